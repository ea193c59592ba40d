package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/nayakiniki/Flickd/pkg/types"
)

// ErrResponse renders an error as {"status": ..., "detail": ...}
type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	Detail         string `json:"detail"`
}

// Render sets the response status
func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errorResponse classifies err and renders the matching status
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isTooLarge(err):
		s.renderError(w, r, ErrTooLarge(err))
	case types.IsInvalidInput(err):
		s.renderError(w, r, ErrBadRequest(err))
	default:
		s.renderError(w, r, ErrInternalServerError(err))
	}
}

// isTooLarge reports whether err came from the request body limit. The
// multipart reader does not always wrap the underlying error.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "http: request body too large")
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		s.logger.Error("failed to render response", "error", err)
	}
}

// ErrBadRequest reports invalid caller input
func ErrBadRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Bad request",
		Detail:         err.Error(),
	}
}

// ErrTooLarge reports an upload over the configured limit
func ErrTooLarge(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusRequestEntityTooLarge,
		StatusText:     "Request entity too large",
		Detail:         "File exceeds the maximum upload size",
	}
}

// ErrInternalServerError embeds the failure message as-is
func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error",
		Detail:         err.Error(),
	}
}
