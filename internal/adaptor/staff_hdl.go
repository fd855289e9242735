package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StaffHandler serves the back-office routes: approval lifecycle, reservation
// conversion, payment recording and reconciliation.
type StaffHandler struct {
	quotes    usecase.QuoteService
	lifecycle usecase.LifecycleService
	reconcile usecase.ReconcileService
	log       *zap.Logger
}

func NewStaffHandler(service *usecase.Service, log *zap.Logger) *StaffHandler {
	return &StaffHandler{
		quotes:    service.Quote,
		lifecycle: service.Lifecycle,
		reconcile: service.Reconcile,
		log:       log.With(zap.String("handler", "staff")),
	}
}

// ApproveQuote handles PUT /api/staff/quotes/{id}/approve (staff only)
func (h *StaffHandler) ApproveQuote(w http.ResponseWriter, r *http.Request) {
	staffID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID, ok := h.parseQuoteID(w, r)
	if !ok {
		return
	}

	quote, err := h.lifecycle.Approve(r.Context(), quoteID, staffID)
	if err != nil {
		handleServiceError(w, h.log, err, "approve quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CancelApproval handles PUT /api/staff/quotes/{id}/cancel-approval (staff only)
func (h *StaffHandler) CancelApproval(w http.ResponseWriter, r *http.Request) {
	staffID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quoteID, ok := h.parseQuoteID(w, r)
	if !ok {
		return
	}

	// Body is optional; cancellation without a reason is allowed.
	var req request.CancelApprovalRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	quote, err := h.lifecycle.CancelApproval(r.Context(), quoteID, staffID, req.Reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel approval")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// ConvertToReservation handles POST /api/staff/quotes/{id}/reservations (staff only)
func (h *StaffHandler) ConvertToReservation(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	if quoteID == "" {
		utils.ResponseBadRequest(w, "Quote ID is required", nil)
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.quotes.ConvertToReservation(r.Context(), quoteID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "convert quote to reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// RecordPayment handles POST /api/staff/payments (staff only)
func (h *StaffHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req request.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	payment, err := h.quotes.RecordPayment(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "record payment")
		return
	}

	utils.ResponseCreated(w, "success", payment)
}

// MarkQuotePaid handles PUT /api/staff/quotes/{id}/mark-paid (staff only)
func (h *StaffHandler) MarkQuotePaid(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	if quoteID == "" {
		utils.ResponseBadRequest(w, "Quote ID is required", nil)
		return
	}

	if err := h.quotes.MarkQuotePaid(r.Context(), quoteID); err != nil {
		handleServiceError(w, h.log, err, "mark quote paid")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Reconcile handles GET /api/staff/reconcile?filter=paid|pending|all (staff only)
func (h *StaffHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	filter, err := usecase.ParseReconcileFilter(r.URL.Query().Get("filter"))
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	summaries, err := h.reconcile.Reconcile(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "reconcile quotes")
		return
	}

	utils.ResponseSuccess(w, "success", summaries)
}

func (h *StaffHandler) parseQuoteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
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
