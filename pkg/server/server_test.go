package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/deptower/pkg/cache"
	"github.com/matzehuels/deptower/pkg/resolve"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	srv := New(Config{Cache: c, Version: "test"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postResolve(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/resolve", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const demoManifest = `{
	"name": "demo",
	"packages": [
		{"name": "app", "version": "1.0.0.NEXT",
		 "dependencies": [{"package": "core", "version": "2.0.0"}]},
		{"name": "core", "version": "2.0.0.NEXT",
		 "dependencies": [{"package": "base", "version": "1.0.0"}]},
		{"name": "base", "version": "1.0.0.NEXT"}
	]
}`

func TestResolve_OK(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := postResolve(t, ts, demoManifest)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("missing X-Request-ID header")
	}

	var res resolve.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(res.Order) != 3 || res.Order[len(res.Order)-1] != "app" {
		t.Errorf("Order = %v, want app last", res.Order)
	}
	// transitivity: app resolves base through core
	found := false
	for _, d := range res.Resolved["app"] {
		if d.Package == "base" {
			found = true
		}
	}
	if !found {
		t.Errorf("app deps = %v, want base included", res.Resolved["app"])
	}
}

func TestResolve_CycleIs422(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := postResolve(t, ts, `{
		"packages": [
			{"name": "a", "dependencies": [{"package": "b", "version": "1.0.0"}]},
			{"name": "b", "dependencies": [{"package": "a", "version": "1.0.0"}]}
		]
	}`)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	var body struct {
		Error string   `json:"error"`
		Chain []string `json:"chain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body.Error, "circular dependency detected") {
		t.Errorf("error = %q", body.Error)
	}
	if len(body.Chain) < 3 || body.Chain[0] != body.Chain[len(body.Chain)-1] {
		t.Errorf("chain = %v, want closed cycle", body.Chain)
	}
}

func TestResolve_BadJSONIs400(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := postResolve(t, ts, `{not json`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResolve_DuplicatePackageIs400(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := postResolve(t, ts, `{"packages": [{"name": "dup"}, {"name": "dup"}]}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResolve_CacheHit(t *testing.T) {
	mem, err := cache.NewMemory(16)
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, mem)

	first := postResolve(t, ts, demoManifest)
	if got := first.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	second := postResolve(t, ts, demoManifest)
	if got := second.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}

	var res resolve.Result
	if err := json.NewDecoder(second.Body).Decode(&res); err != nil {
		t.Fatalf("cached body not a result: %v", err)
	}
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp2, err := http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	var v struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.Version != "test" {
		t.Errorf("version = %q, want test", v.Version)
	}
}
