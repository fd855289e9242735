package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireQuote(
	r chi.Router,
	quoteHandler *adaptor.QuoteHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// All quote routes require authentication.
	r.Route("/api/quotes", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/quotes - Create a draft quote owned by the caller
		r.Post("/", quoteHandler.CreateQuote)

		// GET /api/quotes - List the caller's quotes (paginated)
		r.Get("/", quoteHandler.ListQuotes)

		// GET /api/quotes/{id} - Quote with its line items (owner only)
		r.Get("/{id}", quoteHandler.GetQuote)

		// POST /api/quotes/{id}/submit - Draft -> pending
		r.Post("/{id}/submit", quoteHandler.SubmitQuote)

		// POST /api/quotes/{id}/items - Attach or re-price one service
		r.Post("/{id}/items", quoteHandler.SyncItem)

		// POST /api/quotes/{id}/resync - Re-resolve every item's price
		r.Post("/{id}/resync", quoteHandler.ResyncQuote)

		// DELETE /api/quotes/{id}/items/{kind}/{serviceID} - Detach one item
		r.Delete("/{id}/items/{kind}/{serviceID}", quoteHandler.RemoveItem)
	})
}
