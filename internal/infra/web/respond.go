package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ai-chat-dashboard/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses and safe messages.
// Upstream and configuration detail is already logged where it occurred;
// nothing internal leaks into the body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	case errors.Is(err, domain.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "Rate limits exceeded. Please try again later."})
	case errors.Is(err, domain.ErrPaymentRequired):
		writeJSON(w, http.StatusPaymentRequired, errorBody{Error: "Payment required. Please add credits to your workspace."})
	case errors.Is(err, domain.ErrProviderNotConfigured), errors.Is(err, domain.ErrModelPricingMissing):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "AI service error"})
	case errors.As(err, &upstream):
		msg := "AI service error"
		if upstream.Provider == "gateway" {
			msg = "AI gateway error"
		}
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msg})
	default:
		s.log.Error().Err(err).Msg("unclassified request error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Unknown error"})
	}
}
