package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/repository"
	"github.com/Eursukkul/events-dashboard/internal/service"
	"github.com/Eursukkul/events-dashboard/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	method string
	path   string
	query  string
	body   string
}

// fakeBackend stands in for the events REST API.
type fakeBackend struct {
	mu    sync.Mutex
	calls []backendCall
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.calls = append(b.calls, backendCall{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)})
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/events":
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Breakfast Forum","start_datetime":"2099-01-05T08:00:00","end_datetime":"2099-01-05T10:00:00","organizer":"TBRA","market":"TPA","industry":"Commercial Real Estate","valid":true,"created_at":"2026-01-01T00:00:00"},
			{"id":2,"title":"Golf Classic","start_datetime":"2099-02-05T08:00:00","end_datetime":"2099-02-05T14:00:00","organizer":"GCBX","market":"TPA","industry":"Construction","valid":true,"created_at":"2026-01-01T00:10:00"}
		]`))
	case r.Method == http.MethodGet && r.URL.Path == "/events/3":
		_, _ = w.Write([]byte(`{"id":3,"title":"Mixer","organizer":"REIC","valid":true,"created_at":"2026-01-01T00:00:00","updated_at":"2026-01-01T00:00:00"}`))
	case r.Method == http.MethodPut && r.URL.Path == "/events/3":
		_, _ = w.Write(body)
	case r.Method == http.MethodPost && r.URL.Path == "/events":
		if strings.Contains(string(body), "gcbx") {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"scraper crashed"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":10}]`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	}
}

func (b *fakeBackend) recorded() []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backendCall(nil), b.calls...)
}

func setupStack(t *testing.T) (*fakeBackend, string) {
	t.Helper()
	fb := &fakeBackend{}
	api := httptest.NewServer(fb)
	t.Cleanup(api.Close)

	client := backend.NewClient(api.URL, 5*time.Second)
	svc := service.NewEventService(repository.NewEventRepository(client), nil, nil)
	proxy := httptest.NewServer(newServer(svc))
	t.Cleanup(proxy.Close)

	return fb, proxy.URL
}

func runCLI(t *testing.T, proxyURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"events-dashboard", "--url", proxyURL}, args...))
	return out.String(), err
}

func TestServer_Health(t *testing.T) {
	_, proxy := setupStack(t)

	res, err := http.Get(proxy + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_ListMapsParams(t *testing.T) {
	fb, proxy := setupStack(t)

	res, err := http.Get(proxy + "/api/events?sort_by=title&sort_order=desc&market=&valid=true")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	calls := fb.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "order=desc&sort=title&valid=true", calls[0].query)
}

func TestServer_UpdateStripsImmutableFields(t *testing.T) {
	fb, proxy := setupStack(t)

	body := `{"id":3,"title":"Mixer II","created_at":"x","updated_at":"y"}`
	req, _ := http.NewRequest(http.MethodPut, proxy+"/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	calls := fb.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/events/3", calls[0].path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].body), &sent))
	assert.NotContains(t, sent, "id")
	assert.NotContains(t, sent, "created_at")
	assert.NotContains(t, sent, "updated_at")
	assert.Equal(t, "Mixer II", sent["title"])
}

func TestServer_ErrorEnvelope(t *testing.T) {
	fb, proxy := setupStack(t)

	req, _ := http.NewRequest(http.MethodDelete, proxy+"/api/delete", nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Event ID is required", body["message"])
	assert.Empty(t, fb.recorded())
}

func TestCLI_ListMarksSelection(t *testing.T) {
	_, proxy := setupStack(t)

	out, err := runCLI(t, proxy, "list", "--select", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Breakfast Forum")
	var selectedLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "*") {
			selectedLine = line
		}
	}
	assert.Contains(t, selectedLine, "Golf Classic")
	assert.Contains(t, selectedLine, "rgba(190, 227, 248, 0.66)")
}

func TestCLI_ListRejectsUnknownSort(t *testing.T) {
	fb, proxy := setupStack(t)

	_, err := runCLI(t, proxy, "list", "--sort-by", "created_at")

	assert.Error(t, err)
	assert.Empty(t, fb.recorded())
}

func TestCLI_CreateMissingFieldsMakesNoRequest(t *testing.T) {
	fb, proxy := setupStack(t)

	_, err := runCLI(t, proxy, "create", "--title", "Only a title")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "event_link")
	assert.Empty(t, fb.recorded())
}

func TestCLI_UpdateSendsWholeRecord(t *testing.T) {
	fb, proxy := setupStack(t)

	out, err := runCLI(t, proxy, "update", "--id", "3", "--set", "title=Mixer II", "--set", "color=#FFD700")

	require.NoError(t, err)
	assert.Contains(t, out, "Mixer II")
	assert.Contains(t, out, "Gold")

	calls := fb.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Contains(t, calls[1].body, `"organizer":"REIC"`)
}

func TestCLI_RefreshReportsFailure(t *testing.T) {
	fb, proxy := setupStack(t)

	out, err := runCLI(t, proxy, "refresh", "--site", "tbra")
	require.NoError(t, err)
	assert.Contains(t, out, "refreshed tbra")

	_, err = runCLI(t, proxy, "refresh", "--site", "gcbx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed on gcbx")
	assert.Contains(t, err.Error(), "scraper crashed")

	for _, call := range fb.recorded() {
		assert.NotEqual(t, http.MethodGet, call.method, "refresh should not reload the list: %s %s", call.method, call.path)
	}
}
