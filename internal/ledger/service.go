package ledger

import (
	"context"
	"database/sql"

	"lifequest/internal/clock"
	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

// Fixed reward amounts for ledger milestones.
const (
	RewardFirstEntryOfDay = 10
	RewardTenEntries      = 50
	RewardFiftyEntries    = 250
	RewardNewArtifact     = 15
	RewardNewBuff         = 25
)

// Rewarder receives XP grants for ledger milestones. Calls are fire-and-forget;
// the ledger never consumes the result.
type Rewarder interface {
	GrantXP(ctx context.Context, amount int) (*storage.Player, error)
}

type nopRewarder struct{}

func (nopRewarder) GrantXP(context.Context, int) (*storage.Player, error) { return nil, nil }

type Service struct {
	db        *sql.DB
	entries   *storage.EntryRepo
	artifacts *storage.ArtifactRepo
	buffs     *storage.BuffRepo

	clk      clock.Clock
	rewards  Rewarder
	notifier notify.Notifier
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clk = c }
}

// WithRewarder wires the player-progression collaborator.
func WithRewarder(r Rewarder) Option {
	return func(s *Service) { s.rewards = r }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		entries:   storage.NewEntryRepo(db),
		artifacts: storage.NewArtifactRepo(db),
		buffs:     storage.NewBuffRepo(db),
		clk:       clock.System{},
		rewards:   nopRewarder{},
		notifier:  notify.Nop,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) EntryRepo() *storage.EntryRepo       { return s.entries }
func (s *Service) ArtifactRepo() *storage.ArtifactRepo { return s.artifacts }
func (s *Service) BuffRepo() *storage.BuffRepo         { return s.buffs }
