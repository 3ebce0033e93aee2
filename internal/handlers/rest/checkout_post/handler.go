package checkout_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"figurine/internal/generated/dto"
	"figurine/internal/service/checkout"
	"figurine/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var checkoutDTO dto.CheckoutRequest
	err := json.NewDecoder(r.Body).Decode(&checkoutDTO)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.CreateCheckout(r.Context(), checkoutDTO.Artifacts)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoArtifacts),
			errors.Is(err, checkout.ErrInvalidArtifact):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create checkout")
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	response := dto.CheckoutResponse{
		OrderID:     session.OrderID,
		RedirectUrl: session.RedirectURL,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}
