package payment_webhook_post

import (
	"io"
	"net/http"

	"figurine/pkg/logger"
)

const signatureHeader = "Stripe-Signature"

type Handler struct {
	log           handlerLogger
	authenticator Authenticator
	service       Service
}

func New(log handlerLogger, authenticator Authenticator, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:           handlerLog,
		authenticator: authenticator,
		service:       service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The signature covers the exact bytes on the wire, so the body is read
	// raw before any decoding.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := h.authenticator.VerifyWebhook(payload, r.Header.Get(signatureHeader))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("webhook signature rejected")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.service.ProcessEvent(r.Context(), event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("order_id", event.OrderID),
		).Error("process payment event")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
