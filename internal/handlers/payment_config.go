package handlers

import (
	"net/http"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/config"
)

const paymentCurrency = "USD"

// PaymentConfigHandler serves the public checkout identifiers. No secret is
// ever returned.
type PaymentConfigHandler struct {
	cfg config.PaymentsConfig
}

func NewPaymentConfigHandler(cfg config.PaymentsConfig) *PaymentConfigHandler {
	return &PaymentConfigHandler{cfg: cfg}
}

type PaystackConfigResponse struct {
	PublicKey string `json:"publicKey"`
	Currency  string `json:"currency"`
}

type PayPalConfigResponse struct {
	ClientID string `json:"clientId"`
	Mode     string `json:"mode"`
	Currency string `json:"currency"`
}

func (h *PaymentConfigHandler) Paystack(w http.ResponseWriter, r *http.Request) {
	if h.cfg.PaystackPublicKey == "" {
		writeError(w, http.StatusInternalServerError, "Payment system not configured")
		return
	}
	writeJSON(w, http.StatusOK, PaystackConfigResponse{
		PublicKey: h.cfg.PaystackPublicKey,
		Currency:  paymentCurrency,
	})
}

func (h *PaymentConfigHandler) PayPal(w http.ResponseWriter, r *http.Request) {
	if h.cfg.PayPalClientID == "" {
		writeError(w, http.StatusInternalServerError, "PayPal not configured")
		return
	}
	mode := h.cfg.PayPalMode
	if mode == "" {
		mode = "sandbox"
	}
	writeJSON(w, http.StatusOK, PayPalConfigResponse{
		ClientID: h.cfg.PayPalClientID,
		Mode:     mode,
		Currency: paymentCurrency,
	})
}
