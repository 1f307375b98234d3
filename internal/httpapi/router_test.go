package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/config"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/store"
)

func testServer(t *testing.T) (*httptest.Server, Deps) {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var cfgVal atomic.Value
	cfgVal.Store(config.Default())

	d := Deps{
		DB:             db.Pool,
		Hub:            events.NewHub(),
		Cache:          &analytics.Cache{},
		CfgVal:         &cfgVal,
		UserCfgPath:    filepath.Join(dir, "config.yml"),
		RefreshLimiter: rate.NewLimiter(rate.Inf, 1),
	}
	srv := httptest.NewServer(NewRouter(d))
	t.Cleanup(srv.Close)
	return srv, d
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRecordLifecycleAndSummary(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/records/", `{
		"company": "Acme",
		"status": "Applied",
		"createdAt": "2026-02-01T00:00:00Z",
		"sourceId": "t-1"
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created recordPayload
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if created.ID == 0 {
		t.Fatal("no id assigned")
	}

	// Duplicate sourceId conflicts.
	resp = postJSON(t, srv.URL+"/records/", `{
		"company": "Acme",
		"status": "Applied",
		"createdAt": "2026-02-01T00:00:00Z",
		"sourceId": "t-1"
	}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/analytics/summary")
	if err != nil {
		t.Fatal(err)
	}
	var s analytics.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if s.Total != 1 || s.FunnelJSON["Applied"] != 1 {
		t.Errorf("summary = total %d funnel %v", s.Total, s.FunnelJSON)
	}

	// Move it to Interview and confirm the funnel follows.
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/records/"+itoa(created.ID)+"/status",
		strings.NewReader(`{"status":"Interview"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d", resp.StatusCode)
	}

	resp, _ = http.Get(srv.URL + "/analytics/summary")
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if s.FunnelJSON["Interview"] != 1 || s.FunnelJSON["Applied"] != 0 {
		t.Errorf("funnel after move = %v", s.FunnelJSON)
	}
	if s.ResponseRate != 1 {
		t.Errorf("response rate = %v, want 1 after a transition", s.ResponseRate)
	}
}

func TestImportCSVEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	body := "company,status,created_at,source_id\r\nAcme,Applied,2026-02-01,i-1\r\nGlobex,Offer,2026-02-02,i-2\r\n"
	resp := postJSON(t, srv.URL+"/records/import?format=csv", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	var res importResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Parsed != 2 || res.Added != 2 || res.Skipped != 0 {
		t.Errorf("import result = %+v", res)
	}

	// Re-import is a no-op thanks to source IDs.
	resp2 := postJSON(t, srv.URL+"/records/import?format=csv", body)
	defer resp2.Body.Close()
	var res2 importResult
	if err := json.NewDecoder(resp2.Body).Decode(&res2); err != nil {
		t.Fatal(err)
	}
	if res2.Added != 0 {
		t.Errorf("re-import added %d records", res2.Added)
	}
}

func TestSummaryUsesConfiguredDimension(t *testing.T) {
	srv, d := testServer(t)

	cfg := config.Default()
	cfg.Analytics.Dimension = "industry"
	d.CfgVal.Store(cfg)

	resp := postJSON(t, srv.URL+"/records/", `{
		"company": "Acme",
		"industry": "Fintech",
		"status": "Applied",
		"createdAt": "2026-02-01T00:00:00Z",
		"sourceId": "dim-1"
	}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/analytics/summary")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var s analytics.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if s.Dimension != "industry" {
		t.Errorf("summary dimension = %q, want industry", s.Dimension)
	}
	if len(s.GroupedAverages) != 1 || s.GroupedAverages[0].Key != "Fintech" {
		t.Errorf("grouped averages = %+v, want the Fintech group", s.GroupedAverages)
	}
}

func TestInsightsEndpointEmptyData(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/analytics/insights")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var res insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Insights) != 1 || !strings.Contains(res.Insights[0], "No applications") {
		t.Errorf("insights = %v, want the no-data guidance", res.Insights)
	}
}

func TestExportCSVEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/export/csv")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Metric,Value\r\n") {
		t.Error("csv export missing header row")
	}
}

func TestRefreshRateLimit(t *testing.T) {
	srv, d := testServer(t)
	d.RefreshLimiter.SetLimit(0)
	d.RefreshLimiter.SetBurst(0)

	resp := postJSON(t, srv.URL+"/analytics/refresh", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
