package http

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

const maxBody = 1 << 20 // 1 MB

// ErrBodyTooLarge is returned by Bind when a JSON body exceeds 1 MB.
var ErrBodyTooLarge = stderrors.New("request body too large")

// Request wraps *http.Request with binding helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded.
// JSON fields map via `json:"name"`; form fields use the same tags.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.ContentType(), "application/json") {
		return req.bindJSON(v)
	}
	if err := req.raw.ParseForm(); err != nil {
		return errors.Wrap(err, "parse form")
	}
	return bindForm(req.raw.PostForm, v)
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(nil, req.raw.Body, maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.WithStack(ErrBodyTooLarge)
		}
		return errors.Wrap(err, "read body")
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return errors.Wrap(json.Unmarshal(body, v), "decode JSON body")
}

// bindForm maps form values onto a struct through its json tags.
// Checkbox values (on/off, true/false) decode as booleans for bool fields;
// every other field receives the raw string.
func bindForm(values map[string][]string, v any) error {
	bools := boolFields(v)
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 0 {
			continue
		}
		m[k] = vals[0]
		if !bools[k] {
			continue
		}
		switch vals[0] {
		case "true", "on":
			m[k] = true
		case "false", "off":
			m[k] = false
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return errors.Wrap(json.Unmarshal(b, v), "decode form")
}

// boolFields returns the json names of the bool fields of the struct v
// points to.
func boolFields(v any) map[string]bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	out := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Bool {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = true
	}
	return out
}

// ── Input helpers ────────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}
