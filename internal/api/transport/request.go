// Package transport converts between wire requests and lookup.Request /
// lookup.Response. It is shared by every HTTP binding so they only differ in
// how they obtain a method, query and body and how they write the result.
package transport

import (
	"net/url"
	"strconv"
	"strings"
	"usercheck/internal/lookup"
	"usercheck/pkg/serrors"

	"github.com/go-faster/jx"
)

// Request parameter names.
const (
	ParamUsername  = "username"
	ParamSites     = "sites"
	ParamNSFW      = "nsfw"
	ParamTimeout   = "timeout"
	ParamProxy     = "proxy"
	ParamCatalog   = "json"
	ParamMaxSites  = "max_sites"
	ParamOnlyFound = "only_found"
)

var errUsernameRequired = serrors.With(serrors.ErrBadRequest, "username is required") //nolint: gochecknoglobals

// FromQuery reads a lookup request from URL query parameters. Sites are comma
// separated; booleans are true only when equal to "true" in any case.
func FromQuery(q url.Values) (lookup.Request, error) {
	req := lookup.NewRequest(q.Get(ParamUsername))
	if req.Username == "" {
		return req, errUsernameRequired
	}

	if v := q.Get(ParamSites); v != "" {
		req.Sites = SplitSites(v)
	}
	if q.Has(ParamNSFW) {
		req.IncludeNSFW = strings.EqualFold(q.Get(ParamNSFW), "true")
	}
	if q.Has(ParamOnlyFound) {
		req.OnlyClaimed = strings.EqualFold(q.Get(ParamOnlyFound), "true")
	}
	req.Proxy = q.Get(ParamProxy)
	req.CatalogSource = q.Get(ParamCatalog)

	var err error
	if req.TimeoutSeconds, err = queryInt(q, ParamTimeout, req.TimeoutSeconds); err != nil {
		return req, err
	}
	if req.MaxSites, err = queryInt(q, ParamMaxSites, req.MaxSites); err != nil {
		return req, err
	}

	return req, nil
}

// SplitSites splits a comma separated list, trimming blanks and dropping
// empty names.
func SplitSites(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func queryInt(q url.Values, key string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, serrors.Wrap(serrors.ErrBadRequest, err, "%s must be an integer", key)
	}

	return n, nil
}

// FromBody reads a lookup request from a JSON object body. An empty body is
// treated as an empty object.
func FromBody(body []byte) (lookup.Request, error) {
	req := lookup.NewRequest("")
	if len(strings.TrimSpace(string(body))) == 0 {
		return req, errUsernameRequired
	}

	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return req, serrors.With(serrors.ErrBadRequest, "invalid request body")
	}
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case ParamUsername:
			req.Username, err = optStr(d)
		case ParamSites:
			req.Sites, err = sites(d)
		case ParamNSFW:
			req.IncludeNSFW, err = optBool(d, req.IncludeNSFW)
		case ParamOnlyFound:
			req.OnlyClaimed, err = optBool(d, req.OnlyClaimed)
		case ParamTimeout:
			req.TimeoutSeconds, err = optInt(d, req.TimeoutSeconds)
		case ParamMaxSites:
			req.MaxSites, err = optInt(d, req.MaxSites)
		case ParamProxy:
			req.Proxy, err = optStr(d)
		case ParamCatalog:
			req.CatalogSource, err = optStr(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return serrors.Wrap(serrors.ErrBadRequest, err, "invalid %q", key)
		}

		return nil
	}); err != nil {
		if serrors.KindOf(err) == serrors.ErrBadRequest {
			return req, err
		}

		return req, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	if req.Username == "" {
		return req, errUsernameRequired
	}

	return req, nil
}

func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}

	return d.Str() //nolint: wrapcheck
}

// sites accepts an array of names or a comma separated string.
func sites(d *jx.Decoder) ([]string, error) {
	switch d.Next() {
	case jx.Null:
		return nil, d.Null()
	case jx.String:
		s, err := d.Str()

		return SplitSites(s), err
	default:
		var out []string
		err := d.Arr(func(d *jx.Decoder) error {
			s, err := d.Str()
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}

			return err
		})

		return out, err //nolint: wrapcheck
	}
}

// optBool accepts a JSON boolean or a "true"/"false" string.
func optBool(d *jx.Decoder, def bool) (bool, error) {
	switch d.Next() {
	case jx.Null:
		return def, d.Null()
	case jx.String:
		s, err := d.Str()

		return strings.EqualFold(s, "true"), err
	default:
		return d.Bool() //nolint: wrapcheck
	}
}

// optInt accepts a JSON integer or a numeric string.
func optInt(d *jx.Decoder, def int) (int, error) {
	switch d.Next() {
	case jx.Null:
		return def, d.Null()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return def, err //nolint: wrapcheck
		}

		return strconv.Atoi(strings.TrimSpace(s)) //nolint: wrapcheck
	default:
		return d.Int() //nolint: wrapcheck
	}
}
