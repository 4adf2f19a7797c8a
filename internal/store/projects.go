package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/framequote/internal/estimate"
)

const projectPrefix = "project:"

// ErrInvalidName is returned for an empty project name.
var ErrInvalidName = errors.New("store: project name is required")

// Projects is the repository of named estimate snapshots.
type Projects struct {
	store Store
}

// NewProjects returns a project repository backed by s.
func NewProjects(s Store) *Projects {
	return &Projects{store: s}
}

func projectKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return projectPrefix + name, nil
}

func (p *Projects) Save(ctx context.Context, snap estimate.Snapshot) error {
	key, err := projectKey(snap.Name)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode project %q: %w", snap.Name, err)
	}
	return p.store.Save(ctx, key, raw)
}

// Load returns the stored snapshot, decoding older schemas.
func (p *Projects) Load(ctx context.Context, name string) (estimate.Snapshot, error) {
	key, err := projectKey(name)
	if err != nil {
		return estimate.Snapshot{}, err
	}
	raw, err := p.store.Load(ctx, key)
	if err != nil {
		return estimate.Snapshot{}, err
	}
	snap, err := estimate.DecodeSnapshot(raw)
	if err != nil {
		return estimate.Snapshot{}, fmt.Errorf("project %q: %w", name, err)
	}
	if snap.Name == "" {
		snap.Name = strings.TrimSpace(name)
	}
	return snap, nil
}

func (p *Projects) Delete(ctx context.Context, name string) error {
	key, err := projectKey(name)
	if err != nil {
		return err
	}
	return p.store.Delete(ctx, key)
}

// List returns project names in ascending order.
func (p *Projects) List(ctx context.Context) ([]string, error) {
	keys, err := p.store.Keys(ctx, projectPrefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, projectPrefix))
	}
	return names, nil
}
