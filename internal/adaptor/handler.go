package adaptor

import (
	"errors"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Quote *QuoteHandler
	Staff *StaffHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		Quote: NewQuoteHandler(service.Quote, service.Sync, log),
		Staff: NewStaffHandler(service, log),
	}
}

// handleServiceError maps use case sentinel errors onto HTTP statuses. Shared
// across all handlers so every route reports the same status for the same
// failure class.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrQuoteNotFound),
		errors.Is(err, usecase.ErrServiceNotFound),
		errors.Is(err, usecase.ErrReservationNotFound),
		errors.Is(err, usecase.ErrPriceNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid transition",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrUnknownServiceKind):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotQuoteOwner):
		log.Warn(operation+" failed - not owner",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - email taken",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
