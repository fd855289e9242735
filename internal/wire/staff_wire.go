package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStaff(
	r chi.Router,
	staffHandler *adaptor.StaffHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Back-office routes require authentication AND the staff role.
	r.Route("/api/staff", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Staff(repo.User, log))

		// PUT /api/staff/quotes/{id}/approve - draft|pending -> approved
		r.Put("/quotes/{id}/approve", staffHandler.ApproveQuote)

		// PUT /api/staff/quotes/{id}/cancel-approval - approved -> draft
		r.Put("/quotes/{id}/cancel-approval", staffHandler.CancelApproval)

		// POST /api/staff/quotes/{id}/reservations - Convert approved quote
		r.Post("/quotes/{id}/reservations", staffHandler.ConvertToReservation)

		// PUT /api/staff/quotes/{id}/mark-paid - Payment taken on the quote itself
		r.Put("/quotes/{id}/mark-paid", staffHandler.MarkQuotePaid)

		// POST /api/staff/payments - Record a payment against a reservation
		r.Post("/payments", staffHandler.RecordPayment)

		// GET /api/staff/reconcile?filter=paid|pending|all - Consistency view
		r.Get("/reconcile", staffHandler.Reconcile)
	})
}
