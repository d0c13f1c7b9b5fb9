package fnadapter

import (
	"encoding/base64"
	"maps"
	"net/url"
	"slices"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DecodeEvent parses a JSON event. Both the short field names (method, query,
// headers, body) and the API gateway names (httpMethod,
// queryStringParameters, multiValueQueryStringParameters, isBase64Encoded)
// are understood. Query values may be strings or arrays of strings.
func DecodeEvent(data []byte) (Request, error) {
	req := Request{Query: url.Values{}, Headers: map[string]string{}}
	var (
		body      string
		base64Enc bool
	)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "method", "httpMethod":
			req.Method, err = nullableStr(d)
		case "query", "queryStringParameters", "multiValueQueryStringParameters":
			err = decodeQuery(d, req.Query)
		case "headers":
			err = decodeHeaders(d, req.Headers)
		case "body":
			body, err = nullableStr(d)
		case "isBase64Encoded":
			base64Enc, err = d.Bool()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		return nil
	}); err != nil {
		return req, errors.Wrap(err, "decode event")
	}

	if base64Enc {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return req, errors.Wrap(err, "decode base64 body")
		}
		req.Body = raw
	} else if body != "" {
		req.Body = []byte(body)
	}

	return req, nil
}

func nullableStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}

	return d.Str()
}

func decodeQuery(d *jx.Decoder, q url.Values) error {
	if d.Next() == jx.Null {
		return d.Null()
	}

	return d.Obj(func(d *jx.Decoder, key string) error {
		switch d.Next() {
		case jx.Array:
			var vals []string
			if err := d.Arr(func(d *jx.Decoder) error {
				v, err := d.Str()
				vals = append(vals, v)

				return err
			}); err != nil {
				return err
			}
			q[key] = vals
		default:
			v, err := d.Str()
			if err != nil {
				return err
			}
			if !q.Has(key) {
				q.Set(key, v)
			}
		}

		return nil
	})
}

func decodeHeaders(d *jx.Decoder, h map[string]string) error {
	if d.Next() == jx.Null {
		return d.Null()
	}

	return d.Obj(func(d *jx.Decoder, key string) error {
		v, err := d.Str()
		h[key] = v

		return err
	})
}

// EncodeResponse renders resp as {"statusCode", "headers", "body"}.
func EncodeResponse(resp Response) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("statusCode")
	e.Int(resp.StatusCode)
	e.FieldStart("headers")
	e.ObjStart()
	for _, k := range slices.Sorted(maps.Keys(resp.Headers)) {
		e.FieldStart(k)
		e.Str(resp.Headers[k])
	}
	e.ObjEnd()
	e.FieldStart("body")
	e.Str(string(resp.Body))
	e.ObjEnd()

	return e.Bytes()
}
