package connectcluster

import (
	stderrors "errors"
	"net/http"

	gohttp "github.com/km-arc/sfx-di/framework/http"
	"github.com/km-arc/sfx-di/framework/routing"
)

// connectRequest is the body of POST /prompt/connect-cluster.
type connectRequest struct {
	URL   string `json:"url"`
	Local bool   `json:"local"`
}

// Handler exposes a Prompt over HTTP.
type Handler struct {
	prompt *Prompt
}

// NewHandler returns the HTTP surface of p.
func NewHandler(p *Prompt) *Handler {
	return &Handler{prompt: p}
}

// Routes mounts the prompt endpoints under /prompt.
//
//	POST /prompt/connect-cluster  {"url": "...", "local": false}
//	POST /prompt/exit
func (h *Handler) Routes(r *routing.Router) {
	r.Prefix("/prompt", func(p *routing.Router) {
		p.Post("/connect-cluster", h.Connect)
		p.Post("/exit", h.Exit)
	})
}

// Connect answers 200 {"data": {"url": endpoint}} or 422 with the message
// for the "url" field.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	var body connectRequest
	if err := req.Bind(&body); err != nil {
		status := http.StatusBadRequest
		if stderrors.Is(err, gohttp.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		res.Error(status, err.Error())
		return
	}

	endpoint, err := h.prompt.Connect(body.URL, body.Local)
	switch {
	case err == nil:
		res.Success(map[string]any{"url": endpoint})
	case stderrors.Is(err, ErrSettled):
		res.Conflict(Message(err))
	default:
		res.ValidationError("url", Message(err))
	}
}

// Exit closes the prompt and answers 204.
func (h *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	h.prompt.Exit()
	gohttp.NewResponse(w).NoContent()
}
