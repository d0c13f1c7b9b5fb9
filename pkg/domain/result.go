package domain

import "time"

// Status is the engine's classification of a username on one site.
type Status string

const (
	// StatusClaimed means the username exists on the site.
	StatusClaimed Status = "Claimed"
	// StatusAvailable means the username does not exist on the site.
	StatusAvailable Status = "Available"
	// StatusUnknown means the probe failed or the answer was inconclusive.
	StatusUnknown Status = "Unknown"
	// StatusIllegal means the username is not valid for the site, so no probe was sent.
	StatusIllegal Status = "Illegal"
	// StatusWAF means the probe was blocked by a web application firewall.
	StatusWAF Status = "WAF"
)

// String returns the label used in responses.
func (s Status) String() string { return string(s) }

// Result is the outcome of probing one site for one username.
type Result struct {
	// Site is the canonical site name.
	Site string
	// URLMain is the site's home page.
	URLMain string
	// URLUser is the interpolated profile URL; empty when no probe was sent.
	URLUser string
	// Status is the classification.
	Status Status
	// HTTPStatus is the observed response code; zero when there was no response.
	HTTPStatus int
	// QueryTime is the time spent on the probe; zero when there was no response.
	QueryTime time.Duration
	// Context carries a short explanation for Unknown results.
	Context string
}
