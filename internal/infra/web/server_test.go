//go:build !integration

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/pricing"
	"ai-chat-dashboard/internal/usecase"
)

// ---- Fakes ----

type fakeChatUC struct {
	res   *usecase.ChatResult
	err   error
	calls int
}

func (f *fakeChatUC) Send(_ context.Context, _ model.ChatRequest) (*usecase.ChatResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

type fakeUsageUC struct {
	records []*model.UsageRecord
	summary *model.UsageSummary
	err     error
}

func (f *fakeUsageUC) Recent(_ context.Context, _ string, _ int) ([]*model.UsageRecord, error) {
	return f.records, f.err
}

func (f *fakeUsageUC) Summary(_ context.Context, _ string) (*model.UsageSummary, error) {
	return f.summary, f.err
}

type fakeProjectUC struct {
	project *model.Project
	list    []*model.Project
	err     error
}

func (f *fakeProjectUC) Create(_ context.Context, _, _, _ string) (*model.Project, error) {
	return f.project, f.err
}
func (f *fakeProjectUC) List(_ context.Context, _ string) ([]*model.Project, error) {
	return f.list, f.err
}
func (f *fakeProjectUC) Delete(_ context.Context, _, _ string) error { return f.err }

type fakeProfileUC struct {
	profile *model.Profile
	err     error
}

func (f *fakeProfileUC) Get(_ context.Context, _ string) (*model.Profile, error) {
	return f.profile, f.err
}
func (f *fakeProfileUC) LinkWallet(_ context.Context, _, _ string) (*model.Profile, error) {
	return f.profile, f.err
}

type serverFakes struct {
	chat    *fakeChatUC
	usage   *fakeUsageUC
	project *fakeProjectUC
	profile *fakeProfileUC
}

func newTestServer(t *testing.T) (*Server, *serverFakes) {
	t.Helper()
	f := &serverFakes{
		chat:    &fakeChatUC{},
		usage:   &fakeUsageUC{summary: &model.UsageSummary{}},
		project: &fakeProjectUC{},
		profile: &fakeProfileUC{},
	}
	logger := zerolog.Nop()
	auth := NewAuthManager("test-secret", false, "", 30*time.Minute)
	s := NewServer(f.chat, f.usage, f.project, f.profile, pricing.NewTable(), "admin-key", auth, &logger)
	return s, f
}

func do(t *testing.T, s *Server, method, path string, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v (%s)", err, rec.Body.String())
	}
	return body.Error
}

// ---- Tests ----

func TestPreflightShortCircuits(t *testing.T) {
	s, f := newTestServer(t)

	rec := do(t, s, http.MethodOptions, "/api/v1/chat", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
		t.Errorf("allow-headers = %q", got)
	}
	if f.chat.calls != 0 {
		t.Fatal("preflight must not reach the chat handler")
	}
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/usage", "/nope"} {
		rec := do(t, s, http.MethodGet, path, "", nil)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s: allow-origin = %q", path, got)
		}
	}
}

func TestChatHappyPathWritesBodyVerbatim(t *testing.T) {
	s, f := newTestServer(t)
	body := json.RawMessage(`{"choices":[{"message":{"role":"assistant","content":"hi"}}],"cost":{"input_tokens":1,"output_tokens":1,"total_tokens":2,"cost_usd":0.0001}}`)
	f.chat.res = &usecase.ChatResult{Body: body, Model: pricing.DirectModel}

	rec := do(t, s, http.MethodPost, "/api/v1/chat",
		`{"messages":[{"role":"user","content":"hello"}],"userId":"u1"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	if !bytes.Equal(bytes.TrimSpace(rec.Body.Bytes()), []byte(body)) {
		t.Errorf("body rewritten: %s", rec.Body.String())
	}
}

func TestChatRejectsMalformedJSON(t *testing.T) {
	s, f := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/chat", `{"messages":`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Invalid request body" {
		t.Errorf("message = %q", msg)
	}
	if f.chat.calls != 0 {
		t.Fatal("malformed body must not reach the use case")
	}
}

func TestChatErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests,
			"Rate limits exceeded. Please try again later."},
		{"payment required", domain.ErrPaymentRequired, http.StatusPaymentRequired,
			"Payment required. Please add credits to your workspace."},
		{"provider not configured", domain.ErrProviderNotConfigured, http.StatusInternalServerError,
			"AI service error"},
		{"pricing missing", domain.ErrModelPricingMissing, http.StatusInternalServerError,
			"AI service error"},
		{"direct upstream failure", &domain.UpstreamError{Provider: "anthropic", Status: 500, Err: errors.New("boom")},
			http.StatusInternalServerError, "AI service error"},
		{"gateway upstream failure", &domain.UpstreamError{Provider: "gateway", Status: 503, Err: errors.New("boom")},
			http.StatusInternalServerError, "AI gateway error"},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError, "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, f := newTestServer(t)
			f.chat.err = tt.err

			rec := do(t, s, http.MethodPost, "/api/v1/chat",
				`{"messages":[{"role":"user","content":"hi"}],"userId":"u1"}`, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := decodeError(t, rec); msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestChatErrorNeverLeaksInternals(t *testing.T) {
	s, f := newTestServer(t)
	f.chat.err = &domain.UpstreamError{Provider: "anthropic", Status: 500,
		Err: errors.New("x-api-key ANTHROPIC_API_KEY rejected")}

	rec := do(t, s, http.MethodPost, "/api/v1/chat",
		`{"messages":[{"role":"user","content":"hi"}],"userId":"u1"}`, nil)
	if strings.Contains(rec.Body.String(), "ANTHROPIC_API_KEY") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestUsageHandler(t *testing.T) {
	s, f := newTestServer(t)
	f.usage.records = []*model.UsageRecord{
		{ID: "r1", UserID: "u1", Model: pricing.DirectModel, TotalTokens: 150, CostUSD: 0.00105},
	}
	f.usage.summary = &model.UsageSummary{TotalCostUSD: 0.00105, TotalTokens: 150, RequestCount: 1}

	rec := do(t, s, http.MethodGet, "/api/v1/usage?user_id=u1&limit=10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Data    []*model.UsageRecord `json:"data"`
		Summary *model.UsageSummary  `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "r1" {
		t.Errorf("data = %+v", body.Data)
	}
	if body.Summary == nil || body.Summary.RequestCount != 1 {
		t.Errorf("summary = %+v", body.Summary)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/usage", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user_id: status = %d, want 400", rec.Code)
	}
}

func TestProjectHandlers(t *testing.T) {
	s, f := newTestServer(t)
	proj := model.NewProject("u1", "app", "d")
	f.project.project = proj
	f.project.list = []*model.Project{proj}

	rec := do(t, s, http.MethodPost, "/api/v1/projects",
		`{"user_id":"u1","name":"app","description":"d"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/projects?user_id=u1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listBody struct {
		Data []*model.Project `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listBody); err != nil {
		t.Fatal(err)
	}
	if len(listBody.Data) != 1 || listBody.Data[0].ID != proj.ID {
		t.Errorf("list = %+v", listBody.Data)
	}

	rec = do(t, s, http.MethodDelete, "/api/v1/projects/"+proj.ID+"?user_id=u1", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	f.project.err = domain.ErrNotFound
	rec = do(t, s, http.MethodDelete, "/api/v1/projects/"+proj.ID+"?user_id=other", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", rec.Code)
	}
}

func TestProfileHandlers(t *testing.T) {
	s, f := newTestServer(t)
	f.profile.profile = &model.Profile{UserID: "u1", WalletAddress: "0xabc"}

	rec := do(t, s, http.MethodGet, "/api/v1/profile/u1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var p model.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.WalletAddress != "0xabc" {
		t.Errorf("wallet = %q", p.WalletAddress)
	}

	rec = do(t, s, http.MethodPut, "/api/v1/profile/u1/wallet",
		`{"wallet_address":"0xabc"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("wallet status = %d", rec.Code)
	}
}

func TestAdminLoginAndPricing(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/admin/pricing", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated pricing: status = %d, want 401", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/admin/login", `{"api_key":"wrong"}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bad key login: status = %d, want 403", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/admin/login", `{"api_key":"admin-key"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatal(err)
	}
	if login.Token == "" {
		t.Fatal("empty session token")
	}

	rec = do(t, s, http.MethodGet, "/api/v1/admin/pricing", "",
		map[string]string{"Authorization": "Bearer " + login.Token})
	if rec.Code != http.StatusOK {
		t.Fatalf("pricing status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data []struct {
			Model string `json:"model"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 4 {
		t.Fatalf("pricing rows = %d, want 4", len(body.Data))
	}
	seen := false
	for _, row := range body.Data {
		if row.Model == pricing.DirectModel {
			seen = true
		}
	}
	if !seen {
		t.Errorf("%s missing from pricing rows", pricing.DirectModel)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}
