package engine

import (
	"database/sql"
	"errors"
	"math/rand"
	"strings"
	"time"

	"lifequest/internal/clock"
	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

type Service struct {
	db          *sql.DB
	quests      *storage.QuestRepo
	players     *storage.PlayerRepo
	reflections *storage.ReflectionRepo

	clk      clock.Clock
	rng      *rand.Rand
	notifier notify.Notifier
}

type Option func(*Service)

// WithClock injects a time source; tests use it to simulate day boundaries.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clk = c }
}

// WithRand injects the random source used for penalty template and stat
// selection.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:          db,
		quests:      storage.NewQuestRepo(db),
		players:     storage.NewPlayerRepo(db),
		reflections: storage.NewReflectionRepo(db),
		clk:         clock.System{},
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		notifier:    notify.Nop,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) QuestRepo() *storage.QuestRepo           { return s.quests }
func (s *Service) PlayerRepo() *storage.PlayerRepo         { return s.players }
func (s *Service) ReflectionRepo() *storage.ReflectionRepo { return s.reflections }

func (s *Service) today() string {
	return clock.Day(s.clk.Now())
}

func (s *Service) yesterday() string {
	return clock.Day(s.clk.Now().AddDate(0, 0, -1))
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}
