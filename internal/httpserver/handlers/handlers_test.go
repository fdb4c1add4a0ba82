package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/llm"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
	"github.com/theboringdotapp/newsletter-builder/internal/publish"
	"github.com/theboringdotapp/newsletter-builder/internal/store"
	"github.com/theboringdotapp/newsletter-builder/internal/summarize"
	"github.com/theboringdotapp/newsletter-builder/internal/version"
)

var testNow = func() time.Time { return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC) }

type fakeModel struct {
	replies []string
	calls   int
}

func (m *fakeModel) Complete(_ context.Context, _ llm.Request) (string, error) {
	m.calls++
	if m.calls > len(m.replies) {
		return "", errors.New("unexpected call")
	}
	return m.replies[m.calls-1], nil
}

func newTestDeps(backend *store.MemoryBackend, model llm.Completer, kitURL string) deps.Deps {
	return deps.Deps{
		Logger:        logger.NewNop(),
		TimeNow:       testNow,
		KitTemplateID: 7,
		Stores: func(repo credentials.Repository) (*store.Store, error) {
			return store.New(backend, store.WithClock(testNow)), nil
		},
		Models: func(apiKey string) (llm.Completer, error) {
			return model, nil
		},
		Publishers: deps.KitPublishers(kitURL, 7, nil),
		Prompts:    prompts.NewRegistry(),
	}
}

func newTestRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/links", ListLinks(d))
	r.Post("/api/links", AppendLink(d))
	r.Put("/api/links", ReplaceLinks(d))
	r.Post("/api/newsletters", SaveNewsletter(d))
	r.Get("/api/newsletters/{week}", GetNewsletter(d))
	r.Get("/api/week", Week(d))
	r.Post("/api/generate", Generate(d))
	r.Post("/api/summarize", Summarize(d))
	r.Post("/api/publish", Publish(d))
	r.Get("/api/publish/drafts", ListDrafts(d))
	r.Post("/api/publish/export", ExportBroadcast(d))
	r.Get("/healthz", Healthz(d))
	r.Get("/readyz", Readyz(d))
	r.Get("/infra", Infra(d))
	r.Post("/reload", Reload(d))
	return r
}

func repoHeaders(req *http.Request) *http.Request {
	req.Header.Set(credentials.HeaderAuthorization, "Bearer ghp_test")
	req.Header.Set(credentials.HeaderOwner, "octo")
	req.Header.Set(credentials.HeaderRepo, "links")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLinksRoundTrip(t *testing.T) {
	backend := store.NewMemoryBackend()
	h := newTestRouter(newTestDeps(backend, nil, ""))

	body := `{"url":"https://github.com/owner/tool","title":"Tool"}`
	rec := serve(h, repoHeaders(httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(body))))
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/links status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body)
	}
	var saved domain.SavedLink
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.ID == "" || saved.SavedAt != "2025-01-15T10:00:00Z" || saved.Category != domain.CategoryTool {
		t.Errorf("saved link = %+v, want defaults filled", saved)
	}

	rec = serve(h, repoHeaders(httptest.NewRequest(http.MethodGet, "/api/links?year=2025&month=1", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/links status = %d", rec.Code)
	}
	var links []domain.SavedLink
	if err := json.Unmarshal(rec.Body.Bytes(), &links); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(links) != 1 || links[0].URL != "https://github.com/owner/tool" {
		t.Errorf("GET /api/links = %+v", links)
	}
	if _, ok := backend.Raw(store.LinksPath(2025, 1)); !ok {
		t.Errorf("links file %s not written", store.LinksPath(2025, 1))
	}
}

func TestLinksEmptyMonth(t *testing.T) {
	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, ""))

	rec := serve(h, repoHeaders(httptest.NewRequest(http.MethodGet, "/api/links?year=2024&month=3", nil)))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("GET empty month = %d %q, want 200 []", rec.Code, rec.Body.String())
	}
}

func TestLinksInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"relative url", http.MethodPost, "/api/links", `{"url":"/nope"}`},
		{"ftp url", http.MethodPost, "/api/links", `{"url":"ftp://files.example"}`},
		{"malformed json", http.MethodPost, "/api/links", `{"url":`},
		{"month not a number", http.MethodGet, "/api/links?month=may", ""},
		{"month out of range", http.MethodGet, "/api/links?year=2025&month=13", ""},
		{"replace without links", http.MethodPut, "/api/links", `{"year":2025,"month":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, ""))
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := serve(h, repoHeaders(httptest.NewRequest(tt.method, tt.target, body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body)
			}
		})
	}
}

func TestReplaceLinks(t *testing.T) {
	backend := store.NewMemoryBackend()
	h := newTestRouter(newTestDeps(backend, nil, ""))

	body := `{"links":[{"id":"1","url":"https://a.example","category":"other"}],"year":2024,"month":12}`
	rec := serve(h, repoHeaders(httptest.NewRequest(http.MethodPut, "/api/links", strings.NewReader(body))))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/links status = %d (body %s)", rec.Code, rec.Body)
	}
	if _, ok := backend.Raw(store.LinksPath(2024, 12)); !ok {
		t.Errorf("links file for 2024-12 not written")
	}
}

func TestStoreRoutesWithoutAuthorization(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"list links", http.MethodGet, "/api/links", ""},
		{"append link", http.MethodPost, "/api/links", `{"url":"https://a.example"}`},
		{"save newsletter", http.MethodPost, "/api/newsletters", `{"week":"2025-W03"}`},
		{"get newsletter", http.MethodGet, "/api/newsletters/2025-W03", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := store.NewMemoryBackend()
			h := newTestRouter(newTestDeps(backend, nil, ""))

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := serve(h, httptest.NewRequest(tt.method, tt.target, body))
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if gets, puts := backend.Calls(); gets != 0 || puts != 0 {
				t.Errorf("backend calls = %d gets, %d puts, want none", gets, puts)
			}
		})
	}
}

func TestNewsletterRoundTrip(t *testing.T) {
	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, ""))

	body := `{"links":[{"id":"1","url":"https://a.example","category":"other","selected":true}],"thoughts":[],"generatedContent":"<p>hi</p>","title":"Hi"}`
	rec := serve(h, repoHeaders(httptest.NewRequest(http.MethodPost, "/api/newsletters", strings.NewReader(body))))
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/newsletters status = %d (body %s)", rec.Code, rec.Body)
	}

	rec = serve(h, repoHeaders(httptest.NewRequest(http.MethodGet, "/api/newsletters/2025-W03", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/newsletters/2025-W03 status = %d", rec.Code)
	}
	var got domain.NewsletterData
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Week != "2025-W03" || got.Title != "Hi" || len(got.Links) != 1 {
		t.Errorf("GET newsletter = %+v", got)
	}
}

func TestGetNewsletterErrors(t *testing.T) {
	tests := []struct {
		name string
		week string
		want int
	}{
		{"never saved", "2024-W10", http.StatusNotFound},
		{"malformed week", "last-week", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, ""))
			rec := serve(h, repoHeaders(httptest.NewRequest(http.MethodGet, "/api/newsletters/"+tt.week, nil)))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestWeek(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		want   string
	}{
		{"today", "/api/week", http.StatusOK, "2025-W03"},
		{"january first", "/api/week?date=2025-01-01", http.StatusOK, "2025-W01"},
		{"first saturday", "/api/week?date=2025-01-04", http.StatusOK, "2025-W01"},
		{"first sunday", "/api/week?date=2025-01-05", http.StatusOK, "2025-W02"},
		{"bad date", "/api/week?date=01/05/2025", http.StatusBadRequest, ""},
	}

	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, ""))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.want == "" {
				return
			}
			var got weekResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Week != tt.want {
				t.Errorf("Week() = %q, want %q", got.Week, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	model := &fakeModel{replies: []string{"<h2>Edition</h2>", "Big Week"}}
	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), model, ""))

	body := `{"links":[{"url":"https://a.example","title":"A","selected":true}],"rawThoughts":"first\n\nsecond"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set(credentials.HeaderModelKey, "sk-test")
	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/generate status = %d (body %s)", rec.Code, rec.Body)
	}
	var got struct {
		Content string `json:"content"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Content != "<h2>Edition</h2>" || got.Title != "Big Week" {
		t.Errorf("POST /api/generate = %+v", got)
	}
}

func TestThoughtDatesAreNotValidated(t *testing.T) {
	thoughts := `[{"id":"thought-1","content":"Undated.","date":"","selected":true},` +
		`{"id":"thought-2","content":"Day only.","date":"2025-03-10","selected":true}]`

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"generate", "/api/generate", `{"thoughts":` + thoughts + `}`, http.StatusOK},
		{"save newsletter", "/api/newsletters", `{"week":"2025-W03","links":[],"thoughts":` + thoughts + `}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{replies: []string{"<p>body</p>", "Title"}}
			h := newTestRouter(newTestDeps(store.NewMemoryBackend(), model, ""))

			req := repoHeaders(httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body)))
			req.Header.Set(credentials.HeaderModelKey, "sk-test")
			rec := serve(h, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		body string
		want int
	}{
		{"missing model key", "", `{"links":[{"url":"https://a.example","selected":true}]}`, http.StatusBadRequest},
		{"nothing selected", "sk-test", `{"links":[{"url":"https://a.example","selected":false}]}`, http.StatusBadRequest},
		{"empty body", "sk-test", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{}
			h := newTestRouter(newTestDeps(store.NewMemoryBackend(), model, ""))

			req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tt.body))
			if tt.key != "" {
				req.Header.Set(credentials.HeaderModelKey, tt.key)
			}
			rec := serve(h, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
			if model.calls != 0 {
				t.Errorf("model called %d times, want 0", model.calls)
			}
		})
	}
}

func TestSummarizeRequiresURL(t *testing.T) {
	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), &fakeModel{}, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(`{"url":"  "}`))
	req.Header.Set(credentials.HeaderModelKey, "sk-test")
	rec := serve(h, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// kitServer records the broadcasts it receives.
func kitServer(t *testing.T, received *[]publish.Broadcast) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(publish.APIKeyHeader) != "kit-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":["The access token is invalid"]}`))
			return
		}
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"broadcasts":[{"id":1}]}`))
			return
		}
		var b publish.Broadcast
		_ = json.NewDecoder(r.Body).Decode(&b)
		*received = append(*received, b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"broadcast":{"id":42}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func saveEdition(t *testing.T, backend *store.MemoryBackend, data domain.NewsletterData) {
	t.Helper()
	if err := store.New(backend).SaveNewsletter(context.Background(), data); err != nil {
		t.Fatalf("SaveNewsletter() error = %v", err)
	}
}

func TestPublish(t *testing.T) {
	var received []publish.Broadcast
	srv := kitServer(t, &received)
	backend := store.NewMemoryBackend()
	saveEdition(t, backend, domain.NewsletterData{
		Week:             "2025-W03",
		GeneratedContent: "<h2>Hello</h2><p>This week was busy.</p>",
		Title:            "Busy Week",
	})
	h := newTestRouter(newTestDeps(backend, nil, srv.URL))

	req := repoHeaders(httptest.NewRequest(http.MethodPost, "/api/publish", strings.NewReader(`{"week":"2025-W03","content":"ignored"}`)))
	req.Header.Set(credentials.HeaderKitToken, "kit-secret")
	rec := serve(h, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/publish status = %d (body %s)", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"id":42`) {
		t.Errorf("response = %s, want Kit's broadcast", rec.Body)
	}

	if len(received) != 1 {
		t.Fatalf("Kit received %d broadcasts, want 1", len(received))
	}
	b := received[0]
	if b.Subject != "Busy Week" || b.Description != "Busy Week" {
		t.Errorf("subject/description = %q/%q, want stored title", b.Subject, b.Description)
	}
	if b.Content != "<h2>Hello</h2><p>This week was busy.</p>" {
		t.Errorf("content = %q, want saved edition", b.Content)
	}
	if b.PreviewText != "This week was busy." || b.Public || b.EmailTemplateID != 7 {
		t.Errorf("broadcast = %+v", b)
	}
}

func TestPublishErrors(t *testing.T) {
	tests := []struct {
		name     string
		kitToken string
		body     string
		want     int
	}{
		{"missing kit token", "", `{"week":"2025-W03"}`, http.StatusBadRequest},
		{"edition not saved", "kit-secret", `{"week":"2024-W01"}`, http.StatusNotFound},
		{"malformed week", "kit-secret", `{"week":"soon"}`, http.StatusBadRequest},
		{"rejected by kit", "wrong", `{"week":"2025-W03"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received []publish.Broadcast
			srv := kitServer(t, &received)
			backend := store.NewMemoryBackend()
			saveEdition(t, backend, domain.NewsletterData{Week: "2025-W03", GeneratedContent: "<p>x</p>"})
			h := newTestRouter(newTestDeps(backend, nil, srv.URL))

			req := repoHeaders(httptest.NewRequest(http.MethodPost, "/api/publish", strings.NewReader(tt.body)))
			if tt.kitToken != "" {
				req.Header.Set(credentials.HeaderKitToken, tt.kitToken)
			}
			rec := serve(h, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
			if len(received) != 0 {
				t.Errorf("Kit received %d broadcasts, want 0", len(received))
			}
		})
	}
}

func TestListDrafts(t *testing.T) {
	var received []publish.Broadcast
	srv := kitServer(t, &received)
	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, srv.URL))

	req := httptest.NewRequest(http.MethodGet, "/api/publish/drafts", nil)
	req.Header.Set(credentials.HeaderKitToken, "kit-secret")
	rec := serve(h, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"broadcasts"`) {
		t.Errorf("GET /api/publish/drafts = %d %s", rec.Code, rec.Body)
	}
}

func TestExportBroadcast(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		withRepo    bool
		wantStatus  int
		wantSubject string
		wantContent string
	}{
		{
			name:        "content from request",
			body:        `{"week":"2025-W02","content":"<p>Inline</p>"}`,
			wantStatus:  http.StatusOK,
			wantSubject: "Newsletter 2025-W02",
			wantContent: "<p>Inline</p>",
		},
		{
			name:        "content from saved edition",
			body:        `{"week":"2025-W03"}`,
			withRepo:    true,
			wantStatus:  http.StatusOK,
			wantSubject: "Saved",
			wantContent: "<p>Stored</p>",
		},
		{
			name:        "subject override",
			body:        `{"week":"2025-W03","subject":"Custom"}`,
			withRepo:    true,
			wantStatus:  http.StatusOK,
			wantSubject: "Custom",
			wantContent: "<p>Stored</p>",
		},
		{
			name:       "saved edition without credentials",
			body:       `{"week":"2025-W03"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := store.NewMemoryBackend()
			saveEdition(t, backend, domain.NewsletterData{Week: "2025-W03", GeneratedContent: "<p>Stored</p>", Title: "Saved"})
			h := newTestRouter(newTestDeps(backend, nil, ""))

			req := httptest.NewRequest(http.MethodPost, "/api/publish/export", strings.NewReader(tt.body))
			if tt.withRepo {
				repoHeaders(req)
			}
			rec := serve(h, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename=\"kit-broadcast-") {
				t.Errorf("Content-Disposition = %q", cd)
			}
			var b publish.Broadcast
			if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b.Subject != tt.wantSubject || b.Content != tt.wantContent {
				t.Errorf("export = %+v, want subject %q content %q", b, tt.wantSubject, tt.wantContent)
			}
			if b.EmailTemplateID != 7 || b.PublishedAt != "2025-01-15T10:00:00Z" {
				t.Errorf("export = %+v, want template 7 published now", b)
			}
		})
	}
}

func TestReload(t *testing.T) {
	d := newTestDeps(store.NewMemoryBackend(), nil, "")
	d.ReloadTrigger = make(chan struct{}, 1)
	h := newTestRouter(d)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("first reload status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	rec = serve(h, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second reload status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

// flushCache is a summary cache that records flushes.
type flushCache struct {
	keys    int
	flushed int
}

func (c *flushCache) GetSummary(context.Context, string) (summarize.Summary, bool, error) {
	return summarize.Summary{}, false, nil
}

func (c *flushCache) SaveSummary(context.Context, string, summarize.Summary) error { return nil }

func (c *flushCache) Flush(context.Context) (int, error) {
	c.flushed++
	n := c.keys
	c.keys = 0
	return n, nil
}

func TestReloadFlushSummaries(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantFlushes int
		wantCount   *int
	}{
		{"flush requested", "/reload?flush=summaries", 1, intPtr(3)},
		{"reload only", "/reload", 0, nil},
		{"unknown flush target", "/reload?flush=links", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &flushCache{keys: 3}
			d := newTestDeps(store.NewMemoryBackend(), nil, "")
			d.ReloadTrigger = make(chan struct{}, 1)
			d.SummaryCache = cache
			h := newTestRouter(d)

			rec := serve(h, httptest.NewRequest(http.MethodPost, tt.target, nil))
			if rec.Code != http.StatusAccepted {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
			}
			if cache.flushed != tt.wantFlushes {
				t.Errorf("Flush() called %d times, want %d", cache.flushed, tt.wantFlushes)
			}

			var got reloadResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			switch {
			case tt.wantCount == nil && got.SummariesFlushed != nil:
				t.Errorf("summaries_flushed = %d, want absent", *got.SummariesFlushed)
			case tt.wantCount != nil && (got.SummariesFlushed == nil || *got.SummariesFlushed != *tt.wantCount):
				t.Errorf("summaries_flushed = %v, want %d", got.SummariesFlushed, *tt.wantCount)
			}
		})
	}
}

func TestReloadFlushWithoutCache(t *testing.T) {
	d := newTestDeps(store.NewMemoryBackend(), nil, "")
	d.ReloadTrigger = make(chan struct{}, 1)
	h := newTestRouter(d)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/reload?flush=summaries", nil))
	if rec.Code != http.StatusAccepted || strings.Contains(rec.Body.String(), "summaries_flushed") {
		t.Errorf("reload without cache = %d %s, want 202 without summaries_flushed", rec.Code, rec.Body)
	}
}

func intPtr(n int) *int { return &n }

func TestHealthzReportsBuild(t *testing.T) {
	d := newTestDeps(store.NewMemoryBackend(), nil, "")
	d.StartTime = testNow()
	d.Build = version.Info{Version: "v1.2.3", Commit: "abc1234"}
	h := newTestRouter(d)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" || got["version"] != "v1.2.3" || got["commit"] != "abc1234" {
		t.Errorf("healthz = %v", got)
	}
	if _, ok := got["go_version"]; ok {
		t.Errorf("healthz reports empty go_version: %v", got)
	}
}

func TestReadyzAndInfra(t *testing.T) {
	h := newTestRouter(newTestDeps(store.NewMemoryBackend(), nil, ""))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/infra", nil))
	var got infraResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != "optimal" || got.Components["redis"].Mode != "disabled" {
		t.Errorf("infra = %+v, want optimal with redis disabled", got)
	}

	h = newTestRouter(deps.Deps{Logger: logger.NewNop()})
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz without deps status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
