// Package http provides request binding and JSON response helpers for the
// chi handlers.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	var payload struct {
//	    URL   string `json:"url"`
//	    Local bool   `json:"local"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(map[string]any{"url": url})          // 200 {"data": {...}}
//	res.ValidationError("url", "Only HTTP and HTTPS") // 422 {"errors": {"url": [...]}}
//	res.NoContent()                                  // 204
package http
