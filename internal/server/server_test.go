package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/raysh454/formpilot/internal/app"
	"github.com/raysh454/formpilot/internal/demoserver"
	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/server"
	"github.com/raysh454/formpilot/internal/testutil"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	appCfg := app.DefaultConfig()
	appCfg.StorageRoot = t.TempDir()
	// The htmldoc backend sees served HTML without running scripts, which is
	// exactly what the demo fixtures need.
	appCfg.PageCfg.Backend = "htmldoc"

	s, err := server.NewServer(server.Config{
		ListenAddr: ":0",
		AppConfig:  appCfg,
		Logger:     &testutil.DummyLogger{},
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newDemoPage(t *testing.T) *httptest.Server {
	t.Helper()
	demo := demoserver.NewDemoServer(demoserver.DefaultConfig())
	ts := httptest.NewServer(demo.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/settings", "")

	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_Preflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "OPTIONS", "/scan", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); methods != "POST" {
		t.Errorf("allow-methods = %q", methods)
	}
}

// ─── Scan / Apply ──────────────────────────────────────────────────────

func TestServer_Scan(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	demo := newDemoPage(t)

	rec := doJSON(t, s, "POST", "/scan", `{"url":"`+demo.URL+`/signup"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var items []model.PlanItem
	decodeJSON(t, rec, &items)

	// full name, email, phone, password; hidden and submit excluded
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d: %s", len(items), rec.Body.String())
	}
	byLocator := map[string]model.PlanItem{}
	for _, item := range items {
		byLocator[item.Locator] = item
	}

	if item := byLocator["#password"]; item.Action != model.ActionBlocked || !item.Sensitive {
		t.Errorf("password item = %+v", item)
	}
	if item := byLocator["#full-name"]; item.FieldType != model.FieldFullName {
		t.Errorf("full name item classified as %s: %+v", item.FieldType, item)
	}
	// profile is empty, so even recognized fields are skips
	if item := byLocator["#email"]; item.FieldType != model.FieldEmail || item.Action != model.ActionSkip {
		t.Errorf("email item = %+v", item)
	}
	for _, item := range items {
		if item.Reason == "" {
			t.Errorf("item %s has empty reason", item.Locator)
		}
	}
}

func TestServer_Scan_BadRequest(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	if rec := doJSON(t, s, "POST", "/scan", `{invalid}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON: expected 400, got %d", rec.Code)
	}
	if rec := doJSON(t, s, "POST", "/scan", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing url: expected 400, got %d", rec.Code)
	}
}

func TestServer_Scan_UnreachablePage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/scan", `{"url":"http://127.0.0.1:1/nope"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestServer_ApplyEndToEnd(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	demo := newDemoPage(t)

	// seed a profile first
	rec := doJSON(t, s, "PUT", "/profile",
		`{"fullName":"Jordan Fox","email":"jordan@example.com","phone":"555-0100"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT /profile: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, "POST", "/apply",
		`{"url":"`+demo.URL+`/signup","approvals":{"#full-name":true,"#email":true}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /apply: %d: %s", rec.Code, rec.Body.String())
	}

	var report model.ApplyReport
	decodeJSON(t, rec, &report)

	if report.Summary.FilledCount != 2 {
		t.Errorf("filled = %d, want 2 (%+v)", report.Summary.FilledCount, report.Results)
	}
	if report.Summary.BlockedCount != 1 {
		t.Errorf("blocked = %d, want 1", report.Summary.BlockedCount)
	}
	// phone: planned fill, not approved
	if report.Summary.SkippedCount != 1 {
		t.Errorf("skipped = %d, want 1", report.Summary.SkippedCount)
	}

	// the apply must have produced an audit entry
	rec = doJSON(t, s, "GET", "/audit", "")
	var entries []model.AuditEntry
	decodeJSON(t, rec, &entries)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Filled != 2 || entries[0].Blocked != 1 {
		t.Errorf("audit entry = %+v", entries[0])
	}
	if !strings.HasPrefix(entries[0].Origin, "http://") {
		t.Errorf("origin = %q", entries[0].Origin)
	}
}

// Scanning v1, switching the page to v2, then applying with v1 locators
// reports not_found instead of filling the wrong element.
func TestServer_Apply_StaleLocators(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	demo := newDemoPage(t)

	rec := doJSON(t, s, "PUT", "/profile", `{"fullName":"Jordan Fox"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT /profile: %d", rec.Code)
	}

	// approvals gathered against v1
	rec = doJSON(t, s, "POST", "/scan", `{"url":"`+demo.URL+`/signup"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("scan v1: %d", rec.Code)
	}

	// page changes underneath
	resp, err := http.Post(demo.URL+"/demo/set-version?path=/signup&version=2", "", nil)
	if err != nil {
		t.Fatalf("set-version: %v", err)
	}
	resp.Body.Close()

	rec = doJSON(t, s, "POST", "/apply",
		`{"url":"`+demo.URL+`/signup","approvals":{"#full-name":true}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("apply: %d: %s", rec.Code, rec.Body.String())
	}

	var report model.ApplyReport
	decodeJSON(t, rec, &report)

	// The v2 page has its own locators; the plan was recomputed, so the v1
	// approval key matches nothing and nothing is filled.
	if report.Summary.FilledCount != 0 {
		t.Errorf("filled = %d, want 0 (%+v)", report.Summary.FilledCount, report.Results)
	}
}

// ─── Profile / Settings ────────────────────────────────────────────────

func TestServer_ProfileDefaults(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var p map[string]string
	decodeJSON(t, rec, &p)
	if _, ok := p["email"]; !ok {
		t.Errorf("default profile missing email key: %v", p)
	}
	if _, ok := p["password"]; ok {
		t.Error("default profile exposes a sensitive key")
	}
}

func TestServer_ProfileRoundTripAndHistory(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "PUT", "/profile", `{"email":"a@b.com","password":"nope"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT /profile: %d", rec.Code)
	}

	rec = doJSON(t, s, "GET", "/profile", "")
	var p map[string]string
	decodeJSON(t, rec, &p)
	if p["email"] != "a@b.com" {
		t.Errorf("email = %q", p["email"])
	}
	if _, ok := p["password"]; ok {
		t.Error("sensitive key survived a profile write")
	}

	rec = doJSON(t, s, "GET", "/profile/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /profile/history: %d", rec.Code)
	}
	var history []map[string]any
	decodeJSON(t, rec, &history)
	if len(history) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(history))
	}
}

func TestServer_SettingsRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/settings", "")
	var st model.Settings
	decodeJSON(t, rec, &st)
	if !st.HardBlockSensitive || !st.SkipUnknown {
		t.Errorf("defaults = %+v", st)
	}

	rec = doJSON(t, s, "PUT", "/settings", `{"hard_block_sensitive":true,"skip_unknown":false}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT /settings: %d", rec.Code)
	}

	rec = doJSON(t, s, "GET", "/settings", "")
	decodeJSON(t, rec, &st)
	if st.SkipUnknown {
		t.Error("skip_unknown not persisted")
	}
}

// ─── Policy ────────────────────────────────────────────────────────────

func TestServer_SensitiveTypes(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/policy/sensitive", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp server.SensitiveTypesResponse
	decodeJSON(t, rec, &resp)
	if len(resp.SensitiveTypes) != 5 {
		t.Errorf("sensitive types = %v", resp.SensitiveTypes)
	}
}

// ─── WebSocket apply ───────────────────────────────────────────────────

func TestServer_ApplyWS_Streams(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	demo := newDemoPage(t)

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/apply"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	req := server.ApplyRequest{
		URL:       demo.URL + "/signup",
		Approvals: map[string]bool{},
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	// 4 per-field results, then the final report
	for i := 0; i < 4; i++ {
		var res model.ApplyResult
		if err := conn.ReadJSON(&res); err != nil {
			t.Fatalf("read result %d: %v", i, err)
		}
		if res.Locator == "" || res.Status == "" {
			t.Errorf("result %d incomplete: %+v", i, res)
		}
	}

	var report model.ApplyReport
	if err := conn.ReadJSON(&report); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if got := len(report.Results); got != 4 {
		t.Errorf("report results = %d, want 4", got)
	}
}
