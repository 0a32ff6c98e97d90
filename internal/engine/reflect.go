package engine

import (
	"context"

	"github.com/google/uuid"

	"lifequest/internal/storage"
)

type ReflectionDraft struct {
	Name       string
	Event      string
	Reflection string
	Insight    string
	Stats      []string
}

// AddReflection appends a lessons-learned record. The log is append-only.
func (s *Service) AddReflection(ctx context.Context, in ReflectionDraft) (*storage.Reflection, error) {
	name, err := normalizeTitle(in.Name)
	if err != nil {
		return nil, err
	}

	ref := &storage.Reflection{
		ID:         uuid.New().String(),
		Name:       name,
		Event:      in.Event,
		Reflection: in.Reflection,
		Insight:    in.Insight,
		Date:       s.clk.Now(),
		Stats:      in.Stats,
	}
	if err := s.reflections.Insert(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}
