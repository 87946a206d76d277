package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/learnpath/pkg/buildinfo"
	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/io"
	"github.com/matzehuels/learnpath/pkg/resolve"

	lperrors "github.com/matzehuels/learnpath/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    lperrors.Code `json:"code"`
	Message string        `json:"message"`
}

type cyclesResponse struct {
	Report   *resolve.Report `json:"report"`
	CacheHit bool            `json:"cache_hit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	run, ok := s.generate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handlePathsSVG(w http.ResponseWriter, r *http.Request) {
	run, ok := s.generate(w, r)
	if !ok {
		return
	}
	svg, err := io.RenderSVG(r.Context(), io.ToDOT(run.Result, io.DOTOptions{Removed: true}))
	if err != nil {
		s.writeError(w, r, lperrors.Wrap(lperrors.ErrCodeInternal, err, "render diagram"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Run-ID", run.ID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decode(w, r)
	if !ok {
		return
	}
	report, hit, err := s.runner.Cycles(r.Context(), in, r.URL.Query().Get("refresh") == "true")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cyclesResponse{Report: report, CacheHit: hit})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*engine.Run, bool) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	in, ok := s.decode(w, r)
	if !ok {
		return nil, false
	}
	run, err := s.runner.Execute(r.Context(), in, opts)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return run, true
}

// decode reads the request document, honoring the body size limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (engine.Input, bool) {
	format := io.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = io.FormatYAML
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	in, err := io.ReadDocument(body, format)
	if err != nil {
		s.writeError(w, r, err)
		return engine.Input{}, false
	}
	return in, true
}

// options layers query parameters over the server defaults.
func (s *Server) options(r *http.Request) (engine.Options, error) {
	opts := s.defaults
	q := r.URL.Query()
	if v := q.Get("max_nodes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, lperrors.Wrap(lperrors.ErrCodeInvalidInput, err, "max_nodes")
		}
		opts.MaxNodesPerMilestone = n
	}
	if v := q.Get("max_hours"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, lperrors.Wrap(lperrors.ErrCodeInvalidInput, err, "max_hours")
		}
		opts.MaxHoursPerMilestone = h
	}
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := lperrors.GetCode(err)
	if code == "" {
		code = lperrors.ErrCodeInternal
	}
	msg := lperrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch code := lperrors.GetCode(err); {
	case code == lperrors.ErrCodeInvalidFormat, code == lperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case lperrors.IsClientError(code):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
