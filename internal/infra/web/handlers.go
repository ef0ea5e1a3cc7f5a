package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/infra/logging"
	"ai-chat-dashboard/internal/infra/metrics"
)

// chatHandler is the relay entry point: one POST, one upstream call, one
// usage record, one response.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	ctx := logging.WithUserID(r.Context(), req.UserID)
	start := time.Now()
	res, err := s.chatUC.Send(ctx, req)
	latencyMs := int(time.Since(start).Milliseconds())
	if err != nil {
		metrics.ObserveChatUsage("", req.Model, 0, 0, 0, 0, latencyMs, false)
		s.writeError(w, err)
		return
	}
	metrics.ObserveChatUsage(string(res.Provider), res.Model,
		res.Cost.InputTokens, res.Cost.OutputTokens, res.Cost.TotalTokens,
		res.Cost.CostUSD, latencyMs, true)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Body)
}

func (s *Server) usageHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id is required"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := s.usageUC.Recent(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	summary, err := s.usageUC.Summary(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Data    []*model.UsageRecord `json:"data"`
		Summary *model.UsageSummary  `json:"summary"`
	}{Data: records, Summary: summary})
}

type projectCreateRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) projectsCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req projectCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	proj, err := s.projectUC.Create(r.Context(), req.UserID, req.Name, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) projectsListHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id is required"})
		return
	}
	projects, err := s.projectUC.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Project `json:"data"`
	}{Data: projects})
}

func (s *Server) projectsDeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	id := chi.URLParam(r, "id")
	if userID == "" || id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "user_id and project id are required"})
		return
	}
	if err := s.projectUC.Delete(r.Context(), userID, id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) profileGetHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profileUC.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type walletLinkRequest struct {
	WalletAddress string `json:"wallet_address"`
}

func (s *Server) profileWalletHandler(w http.ResponseWriter, r *http.Request) {
	var req walletLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	profile, err := s.profileUC.LinkWallet(r.Context(), chi.URLParam(r, "userID"), req.WalletAddress)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type adminLoginRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	if s.adminKey == "" || req.APIKey != s.adminKey {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "Forbidden"})
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

func (s *Server) adminPricingHandler(w http.ResponseWriter, _ *http.Request) {
	type pricingRow struct {
		Model         string  `json:"model"`
		InputPerMTok  float64 `json:"input_per_mtok_usd"`
		OutputPerMTok float64 `json:"output_per_mtok_usd"`
	}
	entries := s.prices.List()
	rows := make([]pricingRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, pricingRow{Model: e.Model, InputPerMTok: e.InputPerMTok, OutputPerMTok: e.OutputPerMTok})
	}
	writeJSON(w, http.StatusOK, struct {
		Data []pricingRow `json:"data"`
	}{Data: rows})
}
