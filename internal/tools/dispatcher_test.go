package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/wyre-technology/itglue-mcp/internal/itglue"
)

// countingStub is an upstream API stub that records how many requests it
// served and the last request it saw.
type countingStub struct {
	ts       *httptest.Server
	calls    int
	lastPath string
	lastQury string
}

func newStub(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *countingStub {
	t.Helper()
	s := &countingStub{}
	s.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls++
		s.lastPath = r.URL.Path
		s.lastQury = r.URL.RawQuery
		handler(w, r)
	}))
	t.Cleanup(s.ts.Close)
	return s
}

func emptyList(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte(`{"data": []}`))
}

func stubDispatcher(s *countingStub) *Dispatcher {
	return NewDispatcher(itglue.Credentials{APIKey: "test-key", BaseURL: s.ts.URL})
}

func TestCallUnknownTool(t *testing.T) {
	s := newStub(t, emptyList)
	res := stubDispatcher(s).Call(context.Background(), "delete_everything", nil)
	if !res.IsError {
		t.Fatal("unknown tool should be an error result")
	}
	if res.Text != "Unknown tool: delete_everything" {
		t.Errorf("Text = %q", res.Text)
	}
	if s.calls != 0 {
		t.Errorf("unknown tool made %d network calls", s.calls)
	}
}

func TestCallMissingCredentials(t *testing.T) {
	s := newStub(t, emptyList)
	d := NewDispatcher(itglue.Credentials{BaseURL: s.ts.URL})
	res := d.Call(context.Background(), "search_organizations", nil)
	if !res.IsError {
		t.Fatal("missing credentials should be an error result")
	}
	if !strings.Contains(res.Text, itglue.EnvAPIKey) {
		t.Errorf("credentials error should name the env var, got %q", res.Text)
	}
	if s.calls != 0 {
		t.Errorf("missing credentials made %d network calls", s.calls)
	}
}

func TestGetOrganizationMissingID(t *testing.T) {
	s := newStub(t, emptyList)
	res := stubDispatcher(s).Call(context.Background(), "get_organization", map[string]any{})
	if !res.IsError {
		t.Fatal("missing id should be an error result")
	}
	if !strings.Contains(res.Text, "id") {
		t.Errorf("error should name the missing argument, got %q", res.Text)
	}
	if s.calls != 0 {
		t.Errorf("missing id made %d network calls", s.calls)
	}
}

func TestSearchFlexibleAssetsRequiresTypeID(t *testing.T) {
	s := newStub(t, emptyList)
	res := stubDispatcher(s).Call(context.Background(), "search_flexible_assets", map[string]any{"name": "x"})
	if !res.IsError {
		t.Fatal("missing flexible_asset_type_id should be an error result")
	}
	if s.calls != 0 {
		t.Errorf("made %d network calls before validation", s.calls)
	}
}

func TestSearchDocumentsPath(t *testing.T) {
	s := newStub(t, emptyList)
	res := stubDispatcher(s).Call(context.Background(), "search_documents", map[string]any{"organization_id": "77"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text)
	}
	if s.lastPath != "/organizations/77/relationships/documents" {
		t.Errorf("path = %q", s.lastPath)
	}

	res = stubDispatcher(s).Call(context.Background(), "search_documents", map[string]any{})
	if !res.IsError {
		t.Fatal("missing organization_id should be an error result")
	}
}

func TestSearchPagingDefaults(t *testing.T) {
	s := newStub(t, emptyList)
	res := stubDispatcher(s).Call(context.Background(), "search_organizations", map[string]any{
		"name":                 "Acme",
		"organization_type_id": "",
	})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text)
	}

	q, err := url.ParseQuery(s.lastQury)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Get("page[size]"); got != "50" {
		t.Errorf("page[size] = %q, want default 50", got)
	}
	if got := q.Get("page[number]"); got != "1" {
		t.Errorf("page[number] = %q, want default 1", got)
	}
	if got := q.Get("filter[name]"); got != "Acme" {
		t.Errorf("filter[name] = %q", got)
	}
	// Empty argument values never become filters.
	if q.Has("filter[organization-type-id]") {
		t.Errorf("empty filter argument leaked into query: %v", q)
	}
}

func TestSearchPasswordsForcesRedaction(t *testing.T) {
	s := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		entry := map[string]any{"id": "1", "type": "passwords", "attributes": map[string]any{"name": "wifi"}}
		// Stub mirrors the real API: the secret only appears when
		// show_password is not false.
		if r.URL.Query().Get("show_password") != "false" {
			entry["attributes"].(map[string]any)["password"] = "hunter2"
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []any{entry}})
	})

	// Even a hostile show_password argument cannot reveal secrets.
	res := stubDispatcher(s).Call(context.Background(), "search_passwords", map[string]any{"show_password": true})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text)
	}
	if strings.Contains(res.Text, "hunter2") {
		t.Error("search_passwords leaked a secret value")
	}
	if !strings.Contains(s.lastQury, "show_password=false") {
		t.Errorf("query = %q, want forced show_password=false", s.lastQury)
	}
}

func TestGetPasswordShowPassword(t *testing.T) {
	s := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		attrs := map[string]any{"name": "wifi"}
		if r.URL.Query().Get("show_password") != "false" {
			attrs["password"] = "hunter2"
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "1", "type": "passwords", "attributes": attrs},
		})
	})

	// Default: secret included.
	res := stubDispatcher(s).Call(context.Background(), "get_password", map[string]any{"id": "1"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text)
	}
	if !strings.Contains(res.Text, "hunter2") {
		t.Error("get_password should include the secret by default")
	}

	// Explicit opt-out.
	res = stubDispatcher(s).Call(context.Background(), "get_password", map[string]any{"id": "1", "show_password": false})
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text)
	}
	if strings.Contains(res.Text, "hunter2") {
		t.Error("get_password with show_password=false leaked the secret")
	}
}

func TestGetNotFound(t *testing.T) {
	s := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": null}`))
	})
	res := stubDispatcher(s).Call(context.Background(), "get_configuration", map[string]any{"id": "404"})
	if !res.IsError {
		t.Fatal("empty by-ID lookup should be an error result")
	}
	if !strings.Contains(res.Text, "not found") {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestCallNetworkFailure(t *testing.T) {
	s := newStub(t, emptyList)
	s.ts.Close() // force a transport-level failure

	res := stubDispatcher(s).Call(context.Background(), "search_configurations", nil)
	if !res.IsError {
		t.Fatal("network failure should be an error result")
	}
	if !strings.HasPrefix(res.Text, "Error: ") {
		t.Errorf("Text = %q, want Error: prefix", res.Text)
	}
}

func TestCallUpstreamHTTPError(t *testing.T) {
	s := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"title":"Unauthorized"}]}`))
	})
	res := stubDispatcher(s).Call(context.Background(), "itglue_health_check", nil)
	if !res.IsError {
		t.Fatal("upstream 401 should be an error result")
	}
	if !strings.Contains(res.Text, "401") {
		t.Errorf("Text = %q, want status in message", res.Text)
	}
}

func TestHealthCheck(t *testing.T) {
	s := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [{"id": "1", "type": "organization-types"}], "meta": {"total-count": 12}}`))
	})
	res := stubDispatcher(s).Call(context.Background(), "itglue_health_check", nil)
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text)
	}
	if s.lastPath != "/organization_types" {
		t.Errorf("path = %q", s.lastPath)
	}
	if !strings.Contains(s.lastQury, "page%5Bsize%5D=1") {
		t.Errorf("query = %q, want page[size]=1", s.lastQury)
	}

	var report struct {
		Status                 string `json:"status"`
		Region                 string `json:"region"`
		OrganizationTypesFound int    `json:"organizationTypesFound"`
	}
	if err := json.Unmarshal([]byte(res.Text), &report); err != nil {
		t.Fatalf("health report not JSON: %v", err)
	}
	if report.Status != "ok" || report.Region != "us" || report.OrganizationTypesFound != 12 {
		t.Errorf("report = %+v", report)
	}
}

func TestEveryToolHasAHandler(t *testing.T) {
	if len(Catalog()) != 9 {
		t.Fatalf("catalog has %d tools, want 9", len(Catalog()))
	}
	seen := make(map[string]bool)
	for _, def := range Catalog() {
		if seen[def.Name] {
			t.Errorf("duplicate tool name %q", def.Name)
		}
		seen[def.Name] = true
		if _, ok := handlers[def.Name]; !ok {
			t.Errorf("tool %q has no handler", def.Name)
		}
	}
	for name := range handlers {
		if !seen[name] {
			t.Errorf("handler %q is not in the catalog", name)
		}
	}
}
