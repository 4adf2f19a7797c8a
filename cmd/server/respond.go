package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/store"
)

var errProjectExists = errors.New("project already exists")

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, estimate.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, estimate.ErrNotPromotable), errors.Is(err, errProjectExists):
		return http.StatusConflict
	case errors.Is(err, estimate.ErrInvalidInput),
		errors.Is(err, estimate.ErrUnknownEvent),
		errors.Is(err, estimate.ErrNotSizable),
		errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
