package service

import "net/url"

type paramMapping struct {
	ui      string
	backend string
}

// listParams renames list filters from the names the dashboard uses to the
// names the backend expects. Anything not listed is dropped.
var listParams = []paramMapping{
	{ui: "search", backend: "search"},
	{ui: "market", backend: "market"},
	{ui: "industry", backend: "industry"},
	{ui: "organizer", backend: "organizer"},
	{ui: "valid", backend: "valid"},
	{ui: "start_after", backend: "start_after"},
	{ui: "start_before", backend: "start_before"},
	{ui: "sort_by", backend: "sort"},
	{ui: "sort_order", backend: "order"},
	{ui: "limit", backend: "limit"},
	{ui: "offset", backend: "offset"},
}

// BackendQuery maps the present, non-empty list parameters to backend names.
func BackendQuery(params url.Values) url.Values {
	out := url.Values{}
	for _, m := range listParams {
		if v := params.Get(m.ui); v != "" {
			out.Set(m.backend, v)
		}
	}
	return out
}
