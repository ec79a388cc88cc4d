package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	body   string
}

func newProxy(t *testing.T, status int, reply string) (*Client, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, query: r.URL.Query(), body: string(body)})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second), &reqs
}

func TestClient_ListEvents(t *testing.T) {
	c, reqs := newProxy(t, http.StatusOK, `[{"id":1,"title":"Expo","color":null}]`)

	events, err := c.ListEvents(context.Background(), url.Values{"sort_by": {"title"}})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Expo", events[0].Title)
	assert.Nil(t, events[0].Color)
	assert.Equal(t, http.MethodGet, (*reqs)[0].method)
	assert.Equal(t, "/api/events", (*reqs)[0].path)
	assert.Equal(t, "title", (*reqs)[0].query.Get("sort_by"))
}

func TestClient_UpdateSendsFullRecord(t *testing.T) {
	c, reqs := newProxy(t, http.StatusOK, `{"id":5,"title":"Renamed"}`)

	_, err := c.UpdateEvent(context.Background(), *sampleEvent())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, (*reqs)[0].method)
	assert.Equal(t, "/api/events", (*reqs)[0].path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte((*reqs)[0].body), &sent))
	assert.EqualValues(t, 5, sent["id"])
	assert.Contains(t, sent, "note")
	assert.Contains(t, sent, "attending")
}

func TestClient_CreateAndRefreshPaths(t *testing.T) {
	c, reqs := newProxy(t, http.StatusOK, `{"id":9}`)

	_, err := c.CreateEvent(context.Background(), models.NewEvent{Title: "New"})
	require.NoError(t, err)
	require.NoError(t, c.RefreshSite(context.Background(), "tbra"))

	assert.Equal(t, "/api/events/new", (*reqs)[0].path)
	assert.Equal(t, http.MethodPost, (*reqs)[1].method)
	assert.Equal(t, "/api/events", (*reqs)[1].path)
	assert.JSONEq(t, `{"websites":["tbra"]}`, (*reqs)[1].body)
}

func TestClient_DeleteUsesQueryPath(t *testing.T) {
	c, reqs := newProxy(t, http.StatusOK, `{"message":"Event deleted successfully"}`)

	require.NoError(t, c.DeleteEvent(context.Background(), 12))

	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
	assert.Equal(t, "/api/delete", (*reqs)[0].path)
	assert.Equal(t, "12", (*reqs)[0].query.Get("id"))
}

func TestClient_APIErrorMessage(t *testing.T) {
	cases := []struct {
		reply string
		want  string
	}{
		{`{"detail":"Event not found"}`, "Event not found"},
		{`{"message":"Failed to delete event: gone"}`, "Failed to delete event: gone"},
		{`{"error":"boom"}`, "boom"},
		{`{"detail":[{"loc":["body","title"]}]}`, `[{"loc":["body","title"]}]`},
		{`upstream timeout`, "upstream timeout"},
	}

	for _, tc := range cases {
		c, _ := newProxy(t, http.StatusNotFound, tc.reply)

		_, err := c.GetEvent(context.Background(), 1)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr), tc.reply)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, tc.want, apiErr.Message)
	}
}
