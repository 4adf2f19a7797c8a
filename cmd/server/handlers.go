package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/export"
	"github.com/Simplici0/framequote/internal/store"
)

const maxBodyBytes = 1 << 20

type categoryView struct {
	ID    catalog.Category `json:"id"`
	Label string           `json:"label"`
}

type catalogView struct {
	SeedVersion string              `json:"seedVersion"`
	Categories  []categoryView      `json:"categories"`
	EventTypes  []string            `json:"eventTypes"`
	Frame       catalog.FrameConfig `json:"frame"`
	Items       []catalog.LineItem  `json:"items"`
}

// handleCatalog returns a fresh estimate's visible rows, priced from the
// shared defaults, for the requested frame (?frameType=post&studSize=2x4...).
func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	frame := catalog.DefaultFrameConfig()
	q := r.URL.Query()
	if v := q.Get("frameType"); v != "" {
		frame.FrameType = catalog.FrameType(v)
	}
	if v := q.Get("studSize"); v != "" {
		frame.StudSize = catalog.StudSize(v)
	}
	if err := frame.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A new estimate switched to the requested frame, so derived
	// quantities and the post price are filled in.
	st, err := s.engine.New(r.Context(), "")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st, err = s.engine.ApplyAll(r.Context(), st,
		estimate.SetFrameType{FrameType: frame.FrameType},
		estimate.SetStudSize{StudSize: frame.StudSize},
	)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view := catalogView{
		SeedVersion: catalog.SeedVersion,
		EventTypes:  estimate.EventTypes(),
		Frame:       st.Frame,
		Items:       st.VisibleItems(),
	}
	for _, c := range catalog.Categories {
		view.Categories = append(view.Categories, categoryView{ID: c, Label: c.Label()})
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *server) handlePricesList(w http.ResponseWriter, r *http.Request) {
	prices, err := s.prices.Prices(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make(map[string]string, len(prices))
	for id, p := range prices {
		out[strconv.Itoa(id)] = p.String()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handlePriceClear(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	removed, err := s.prices.Clear(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no promoted price for item %d", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleProjectsList(w http.ResponseWriter, r *http.Request) {
	names, err := s.projects.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"projects": names})
}

type createProjectRequest struct {
	Name string `json:"name"`
}

func (s *server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.fail(w, r, store.ErrInvalidName)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := r.Context()
	if _, err := s.projects.Load(ctx, name); err == nil {
		s.fail(w, r, fmt.Errorf("%w: %q", errProjectExists, name))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		s.fail(w, r, err)
		return
	}

	st, err := s.engine.New(ctx, name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.save(ctx, st); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st.View())
}

func (s *server) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st.View())
}

// handleProjectLoad reloads the project from storage, rematerializing prices
// and dropping manual overrides.
func (s *server) handleProjectLoad(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "name")
	delete(s.open, name)
	st, err := s.state(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st.View())
}

func (s *server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "name")
	if err := s.projects.Delete(r.Context(), name); err != nil {
		s.fail(w, r, err)
		return
	}
	delete(s.open, name)
	w.WriteHeader(http.StatusNoContent)
}

// handleProjectEvents applies one event envelope or a JSON array of them.
// Nothing is saved unless every event applies.
func (s *server) handleProjectEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	events, err := estimate.DecodeEvents(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := r.Context()
	st, err := s.state(ctx, chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	next, err := s.engine.ApplyAll(ctx, st, events...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.save(ctx, next); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, next.View())
}

func (s *server) handleProjectExport(w http.ResponseWriter, r *http.Request) {
	format, ok := export.FormatFor(chi.URLParam(r, "format"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown export format")
		return
	}

	s.mu.Lock()
	st, err := s.state(r.Context(), chi.URLParam(r, "name"))
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := format.Render(&buf, export.Build(st)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", st.Name+"."+format.Ext))
	_, _ = w.Write(buf.Bytes())
}

// state returns the open project, loading it from storage on first use.
// Callers hold s.mu.
func (s *server) state(ctx context.Context, name string) (estimate.State, error) {
	if st, ok := s.open[name]; ok {
		return st, nil
	}
	snap, err := s.projects.Load(ctx, name)
	if err != nil {
		return estimate.State{}, err
	}
	st, err := s.engine.Load(ctx, snap)
	if err != nil {
		return estimate.State{}, err
	}
	s.open[name] = st
	return st, nil
}

// save persists the state and keeps it open. Callers hold s.mu.
func (s *server) save(ctx context.Context, st estimate.State) error {
	if err := s.projects.Save(ctx, st.Snapshot(s.now())); err != nil {
		return err
	}
	s.open[st.Name] = st
	return nil
}
