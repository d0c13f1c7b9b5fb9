package catalog

import (
	"usercheck/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Decode parses a catalog document. Sites keep the order in which they appear
// in the document; keys starting with "$" (such as "$schema") are skipped.
func Decode(data []byte) (*domain.Catalog, error) {
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, errors.New("catalog must be a JSON object")
	}

	c := domain.NewCatalog()
	if err := d.Obj(func(d *jx.Decoder, name string) error {
		if name == "" || name[0] == '$' {
			return d.Skip()
		}
		site, err := decodeSite(d, name)
		if err != nil {
			return errors.Wrapf(err, "site %q", name)
		}
		c.Put(site)

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	return c, nil
}

func decodeSite(d *jx.Decoder, name string) (domain.Site, error) {
	site := domain.Site{Name: name}
	if d.Next() != jx.Object {
		return site, errors.New("site entry must be an object")
	}

	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "url":
			site.URL, err = d.Str()
		case "urlMain":
			site.URLMain, err = d.Str()
		case "urlProbe":
			site.URLProbe, err = d.Str()
		case "errorUrl":
			site.ErrorURL, err = d.Str()
		case "regexCheck":
			site.RegexCheck, err = d.Str()
		case "request_method":
			site.RequestMethod, err = d.Str()
		case "username_claimed":
			site.UsernameClaimed, err = d.Str()
		case "isNSFW":
			site.NSFW, err = d.Bool()
		case "errorType":
			var types []string
			types, err = strOrStrs(d)
			for _, t := range types {
				site.ErrorTypes = append(site.ErrorTypes, domain.ErrorType(t))
			}
		case "errorMsg":
			site.ErrorMessages, err = strOrStrs(d)
		case "errorCode":
			site.ErrorCodes, err = intOrInts(d)
		case "headers":
			site.Headers, err = strMap(d)
		case "request_payload":
			var raw jx.Raw
			raw, err = d.Raw()
			site.RequestPayload = append([]byte(nil), raw...)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		return nil
	})
	if err != nil {
		return site, err
	}
	if site.URL == "" {
		return site, errors.New(`missing "url"`)
	}

	return site, nil
}

func strOrStrs(d *jx.Decoder) ([]string, error) {
	switch d.Next() {
	case jx.String:
		s, err := d.Str()

		return []string{s}, err
	case jx.Array:
		var out []string
		err := d.Arr(func(d *jx.Decoder) error {
			s, err := d.Str()
			out = append(out, s)

			return err
		})

		return out, err
	case jx.Null:
		return nil, d.Null()
	default:
		return nil, errors.New("expected string or array of strings")
	}
}

func intOrInts(d *jx.Decoder) ([]int, error) {
	switch d.Next() {
	case jx.Number:
		n, err := d.Int()

		return []int{n}, err
	case jx.Array:
		var out []int
		err := d.Arr(func(d *jx.Decoder) error {
			n, err := d.Int()
			out = append(out, n)

			return err
		})

		return out, err
	case jx.Null:
		return nil, d.Null()
	default:
		return nil, errors.New("expected integer or array of integers")
	}
}

func strMap(d *jx.Decoder) (map[string]string, error) {
	out := map[string]string{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		v, err := d.Str()
		out[key] = v

		return err
	})

	return out, err
}
