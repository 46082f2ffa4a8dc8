package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Manu2954/Buildora-sub000/internal/repository"
	"github.com/Manu2954/Buildora-sub000/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError translates domain sentinels into HTTP responses.
// Anything unrecognized becomes a generic 500; internals are logged by the
// layer that produced them, never leaked to the client.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrCompanyNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrLeadNotFound),
		errors.Is(err, repository.ErrAdNotFound),
		errors.Is(err, repository.ErrImageNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, service.ErrVariantNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrMissingColumns):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())

	case errors.Is(err, service.ErrAccountDisabled):
		respondError(w, http.StatusForbidden, "account_disabled", err.Error())

	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "conflict", err.Error())

	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
