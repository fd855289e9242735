package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quotes usecase.QuoteService
	sync   usecase.SyncService
	log    *zap.Logger
}

func NewQuoteHandler(quotes usecase.QuoteService, sync usecase.SyncService, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		sync:   sync,
		log:    log.With(zap.String("handler", "quote")),
	}
}

// CreateQuote handles POST /api/quotes (protected)
func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	quote, err := h.quotes.CreateQuote(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create quote")
		return
	}

	utils.ResponseCreated(w, "success", quote)
}

// ListQuotes handles GET /api/quotes (protected)
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	quotes, err := h.quotes.ListQuotes(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list quotes")
		return
	}

	utils.ResponseSuccess(w, "success", quotes)
}

// GetQuote handles GET /api/quotes/{id} (protected, owner only)
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID := chi.URLParam(r, "id")
	if quoteID == "" {
		utils.ResponseBadRequest(w, "Quote ID is required", nil)
		return
	}

	quote, err := h.quotes.GetQuote(r.Context(), userID.String(), quoteID)
	if err != nil {
		handleServiceError(w, h.log, err, "get quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// SubmitQuote handles POST /api/quotes/{id}/submit (protected, owner only)
func (h *QuoteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID := chi.URLParam(r, "id")
	if quoteID == "" {
		utils.ResponseBadRequest(w, "Quote ID is required", nil)
		return
	}

	quote, err := h.quotes.SubmitQuote(r.Context(), userID.String(), quoteID)
	if err != nil {
		handleServiceError(w, h.log, err, "submit quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// SyncItem handles POST /api/quotes/{id}/items (protected). Attaches or
// re-prices one service on the quote and returns the recomputed total.
func (h *QuoteHandler) SyncItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID, ok := h.parseQuoteID(w, r)
	if !ok {
		return
	}

	var req request.SyncItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid service ID format", nil)
		return
	}

	result, err := h.sync.SyncOne(r.Context(), userID, quoteID,
		entity.ServiceKind(req.ServiceKind), serviceID, req.PriceCode, req.Quantity)
	if err != nil {
		handleServiceError(w, h.log, err, "sync quote item")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ResyncQuote handles POST /api/quotes/{id}/resync (protected). Re-resolves
// every item from its service record's current price code.
func (h *QuoteHandler) ResyncQuote(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID, ok := h.parseQuoteID(w, r)
	if !ok {
		return
	}

	result, err := h.sync.SyncAll(r.Context(), userID, quoteID)
	if err != nil {
		handleServiceError(w, h.log, err, "resync quote")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// RemoveItem handles DELETE /api/quotes/{id}/items/{kind}/{serviceID} (protected)
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID, ok := h.parseQuoteID(w, r)
	if !ok {
		return
	}

	kind := entity.ServiceKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		utils.ResponseBadRequest(w, "Invalid service kind", nil)
		return
	}

	serviceID, err := uuid.Parse(chi.URLParam(r, "serviceID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid service ID format", nil)
		return
	}

	quoteTotal, err := h.sync.RemoveItem(r.Context(), userID, quoteID, kind, serviceID)
	if err != nil {
		handleServiceError(w, h.log, err, "remove quote item")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]float64{"quote_total": quoteTotal})
}

func (h *QuoteHandler) parseQuoteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "Quote ID is required", nil)
		return uuid.Nil, false
	}

	quoteID, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid quote ID format", nil)
		return uuid.Nil, false
	}

	return quoteID, true
}
