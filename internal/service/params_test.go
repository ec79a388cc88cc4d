package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendQuery_RenamesAndDropsEmpty(t *testing.T) {
	in := url.Values{
		"search":       {"expo"},
		"market":       {"Tampa"},
		"industry":     {""},
		"organizer":    {"NAIOP"},
		"valid":        {"true"},
		"start_after":  {"2025-06-01T00:00:00.000Z"},
		"start_before": {""},
		"sort_by":      {"start_datetime"},
		"sort_order":   {"asc"},
		"limit":        {"50"},
		"offset":       {"0"},
		"filter":       {"all"},
	}

	got := BackendQuery(in)

	assert.Equal(t, url.Values{
		"search":      {"expo"},
		"market":      {"Tampa"},
		"organizer":   {"NAIOP"},
		"valid":       {"true"},
		"start_after": {"2025-06-01T00:00:00.000Z"},
		"sort":        {"start_datetime"},
		"order":       {"asc"},
		"limit":       {"50"},
		"offset":      {"0"},
	}, got)
}

func TestBackendQuery_NoParams(t *testing.T) {
	assert.Empty(t, BackendQuery(url.Values{}))
}

func TestBackendQuery_NeverForwardsEmptyValues(t *testing.T) {
	in := url.Values{}
	for _, m := range listParams {
		in.Set(m.ui, "")
	}

	got := BackendQuery(in)

	assert.Empty(t, got.Encode())
}

func TestBackendQuery_EveryMappingUsesBackendName(t *testing.T) {
	for _, m := range listParams {
		got := BackendQuery(url.Values{m.ui: {"v"}})
		assert.Equal(t, url.Values{m.backend: {"v"}}, got, m.ui)
	}
}
