package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

type ArtifactDraft struct {
	Name        string
	Value       float64
	Description string
	AcquiredAt  time.Time // zero means now
}

// AddArtifact records a durable owned asset and grants the fixed reward.
func (s *Service) AddArtifact(ctx context.Context, in ArtifactDraft) (*storage.Artifact, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("artifact name is required")
	}
	if in.Value < 0 {
		return nil, fmt.Errorf("artifact value must be non-negative, got %v", in.Value)
	}

	acquired := in.AcquiredAt
	if acquired.IsZero() {
		acquired = s.clk.Now()
	}

	a := &storage.Artifact{
		ID:          uuid.New().String(),
		Name:        name,
		Value:       in.Value,
		Description: in.Description,
		AcquiredAt:  acquired,
	}
	if err := s.artifacts.Insert(ctx, a); err != nil {
		return nil, err
	}

	_, _ = s.rewards.GrantXP(ctx, RewardNewArtifact)
	s.notifier.Notify(notify.Info, fmt.Sprintf("Artifact acquired: %s (+%d XP)", name, RewardNewArtifact))
	return a, nil
}

func (s *Service) DeleteArtifact(ctx context.Context, id string) error {
	return s.artifacts.Delete(ctx, id)
}

func (s *Service) Artifacts(ctx context.Context) ([]storage.Artifact, error) {
	return s.artifacts.ListAll(ctx)
}

type BuffDraft struct {
	Name          string
	ValuePerMonth float64
	Source        string
	StartDate     time.Time // zero means now
}

// AddBuff records a recurring monthly income stream, active by default, and
// grants the fixed reward.
func (s *Service) AddBuff(ctx context.Context, in BuffDraft) (*storage.Buff, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("buff name is required")
	}
	if in.ValuePerMonth < 0 {
		return nil, fmt.Errorf("buff value must be non-negative, got %v", in.ValuePerMonth)
	}

	start := in.StartDate
	if start.IsZero() {
		start = s.clk.Now()
	}

	b := &storage.Buff{
		ID:            uuid.New().String(),
		Name:          name,
		ValuePerMonth: in.ValuePerMonth,
		Source:        in.Source,
		StartDate:     start,
		Active:        true,
	}
	if err := s.buffs.Insert(ctx, b); err != nil {
		return nil, err
	}

	_, _ = s.rewards.GrantXP(ctx, RewardNewBuff)
	s.notifier.Notify(notify.Info, fmt.Sprintf("Passive buff gained: %s (+%d XP)", name, RewardNewBuff))
	return b, nil
}

// ToggleBuff flips a buff's active flag. An inactive buff is excluded from
// totals but keeps its history. Absent ids return nil with no change.
func (s *Service) ToggleBuff(ctx context.Context, id string) (*storage.Buff, error) {
	b, err := s.buffs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	b.Active = !b.Active
	if err := s.buffs.SetActive(ctx, id, b.Active); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBuff(ctx context.Context, id string) error {
	return s.buffs.Delete(ctx, id)
}

func (s *Service) Buffs(ctx context.Context) ([]storage.Buff, error) {
	return s.buffs.ListAll(ctx)
}
