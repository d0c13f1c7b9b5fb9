package lookup

import (
	"usercheck/pkg/domain"
)

// Response is the outcome of one lookup.
type Response struct {
	Username string `json:"username"`
	// TotalSites is the number of sites probed, before OnlyClaimed filtering.
	TotalSites int          `json:"total_sites"`
	Results    []SiteResult `json:"results"`
}

// SiteResult summarizes one probed site. Nil fields were not observed.
type SiteResult struct {
	Site          string   `json:"site"`
	URLMain       *string  `json:"url_main"`
	URLUser       *string  `json:"url_user"`
	Status        string   `json:"status"`
	HTTPStatus    *int     `json:"http_status"`
	ResponseTimeS *float64 `json:"response_time_s"`
}

// BuildResponsePayload turns engine results into a Response with one entry per
// selected site, in selection order. With onlyClaimed set, entries whose
// status is not Claimed are dropped; TotalSites still counts them.
func BuildResponsePayload(username string,
	selection *domain.Catalog,
	results map[string]domain.Result,
	onlyClaimed bool) *Response {
	resp := &Response{
		Username:   username,
		TotalSites: selection.Len(),
		Results:    make([]SiteResult, 0, selection.Len()),
	}

	for _, site := range selection.Sites() {
		r, ok := results[site.Name]
		if !ok {
			r = domain.Result{
				Site:    site.Name,
				URLMain: site.URLMain,
				URLUser: site.UserURL(username),
				Status:  domain.StatusUnknown,
			}
		}
		if onlyClaimed && r.Status != domain.StatusClaimed {
			continue
		}
		resp.Results = append(resp.Results, summarize(site.Name, r))
	}

	return resp
}

func summarize(name string, r domain.Result) SiteResult {
	sr := SiteResult{
		Site:    name,
		URLMain: optional(r.URLMain),
		URLUser: optional(r.URLUser),
		Status:  r.Status.String(),
	}
	if r.HTTPStatus != 0 {
		code := r.HTTPStatus
		sr.HTTPStatus = &code
	}
	if r.QueryTime > 0 {
		secs := r.QueryTime.Seconds()
		sr.ResponseTimeS = &secs
	}

	return sr
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
