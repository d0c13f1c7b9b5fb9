package domain

import "strings"

// ErrorType names a rule the engine uses to decide whether a username is
// claimed on a site.
type ErrorType string

const (
	// ErrorTypeStatusCode treats error codes (or any non-2xx status) as "available".
	ErrorTypeStatusCode ErrorType = "status_code"
	// ErrorTypeMessage treats the presence of an error message in the body as "available".
	ErrorTypeMessage ErrorType = "message"
	// ErrorTypeResponseURL treats any redirect away from the profile URL as "available".
	ErrorTypeResponseURL ErrorType = "response_url"
)

// Site describes a single website from the catalog.
type Site struct {
	// Name is the canonical, case-sensitive site name.
	Name string `json:"name"`
	// URLMain is the home page of the site.
	URLMain string `json:"urlMain"`
	// URL is the user profile URL template; "{}" is replaced with the username.
	URL string `json:"url"`
	// URLProbe optionally overrides URL for the actual request.
	URLProbe string `json:"urlProbe,omitempty"`
	// NSFW marks adult-content sites which are excluded unless asked for.
	NSFW bool `json:"isNSFW,omitempty"`

	ErrorTypes     []ErrorType       `json:"errorType"`
	ErrorMessages  []string          `json:"errorMsg,omitempty"`
	ErrorCodes     []int             `json:"errorCode,omitempty"`
	ErrorURL       string            `json:"errorUrl,omitempty"`
	RegexCheck     string            `json:"regexCheck,omitempty"`
	RequestMethod  string            `json:"request_method,omitempty"`
	RequestPayload []byte            `json:"-"`
	Headers        map[string]string `json:"headers,omitempty"`

	// UsernameClaimed is a username known to exist on the site.
	UsernameClaimed string `json:"username_claimed,omitempty"`
}

// UserURL returns the profile URL of username on the site.
func (s Site) UserURL(username string) string {
	return Interpolate(s.URL, username)
}

// Interpolate substitutes username for every "{}" in a URL template.
func Interpolate(template, username string) string {
	return strings.ReplaceAll(template, "{}", strings.ReplaceAll(username, " ", "%20"))
}

// Catalog is an ordered set of sites keyed by canonical name. Iteration order is
// the order in which sites were added. The zero value is an empty catalog.
//
// Catalog is also used to represent a selection of sites for one lookup.
type Catalog struct {
	sites []Site
	index map[string]int
}

// NewCatalog builds a catalog from sites in the given order. A later site with
// the same name replaces the earlier one in place.
func NewCatalog(sites ...Site) *Catalog {
	c := &Catalog{}
	for _, s := range sites {
		c.Put(s)
	}

	return c
}

// Put adds or replaces a site. Replacing keeps the original position.
func (c *Catalog) Put(s Site) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[s.Name]; ok {
		c.sites[i] = s

		return
	}
	c.index[s.Name] = len(c.sites)
	c.sites = append(c.sites, s)
}

// Get returns the site with the exact canonical name.
func (c *Catalog) Get(name string) (Site, bool) {
	if c == nil {
		return Site{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Site{}, false
	}

	return c.sites[i], true
}

// Len returns the number of sites.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.sites)
}

// Sites returns a copy of the sites in catalog order.
func (c *Catalog) Sites() []Site {
	if c == nil {
		return nil
	}
	out := make([]Site, len(c.sites))
	copy(out, c.sites)

	return out
}

// Names returns site names in catalog order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.sites))
	for _, s := range c.sites {
		out = append(out, s.Name)
	}

	return out
}

// Head returns a new catalog holding the first n sites.
func (c *Catalog) Head(n int) *Catalog {
	if c == nil {
		return &Catalog{}
	}
	if n > c.Len() {
		n = c.Len()
	}
	if n < 0 {
		n = 0
	}

	return NewCatalog(c.sites[:n]...)
}

// FilterNSFW returns a catalog without NSFW sites, except those whose name
// matches one of keep case-insensitively.
func (c *Catalog) FilterNSFW(keep []string) *Catalog {
	kept := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		kept[strings.ToLower(k)] = struct{}{}
	}

	out := &Catalog{}
	for _, s := range c.Sites() {
		if s.NSFW {
			if _, ok := kept[strings.ToLower(s.Name)]; !ok {
				continue
			}
		}
		out.Put(s)
	}

	return out
}
