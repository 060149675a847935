package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flowlayout/pkg/buildinfo"
	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// CreateResponse is the reply to POST /v1/layouts.
type CreateResponse struct {
	ID       string          `json:"id"`
	Layout   document.Layout `json:"layout"`
	Format   string          `json:"format,omitempty"`
	Artifact string          `json:"artifact,omitempty"`
	Cached   bool            `json:"cached"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := document.Read(http.MaxBytesReader(w, r.Body, MaxBodyBytes), document.FormatJSON)
	if err != nil {
		s.fail(w, err)
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := s.store.Save(r.Context(), r.URL.Query().Get("name"), res.Layout)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := CreateResponse{
		ID:     id,
		Layout: res.Layout,
		Cached: res.CacheInfo.LayoutHit,
	}
	if f := r.URL.Query().Get("format"); f != "" {
		resp.Format = f
		resp.Artifact = string(res.Artifacts[f])
	}
	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// optionsFromQuery reads layout overrides and the format from the query.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		WidthMode:  q.Get("width_mode"),
		HeightMode: q.Get("height_mode"),
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"hgap", &opts.HorizontalGap},
		{"vgap", &opts.VerticalGap},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not an integer", p.name, raw)
		}
		*p.dst = &v
	}
	return opts, opts.ValidateAndSetDefaults()
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := message(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeError(w, status, string(code), msg)
}

// message is the error's user message followed by its cause, if any.
func message(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return errors.UserMessage(err)
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
