package engine

import (
	"context"
	"fmt"
	"math"

	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

// LevelGrowth is the multiplier applied to the next-level threshold on every
// level-up.
const LevelGrowth = 1.5

// GrantXP adds to the running XP total and advances the level for every
// threshold the total crosses, growing the next threshold by LevelGrowth.
func (s *Service) GrantXP(ctx context.Context, amount int) (*storage.Player, error) {
	if amount < 0 {
		return nil, fmt.Errorf("xp amount must be non-negative, got %d", amount)
	}

	p, err := s.players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := p.Level

	p.XPTotal += amount
	for p.XPTotal >= p.XPNext {
		p.Level++
		p.XPNext = int(math.Round(float64(p.XPNext) * LevelGrowth))
	}
	if err := s.players.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Level > levelBefore {
		s.notifier.Notify(notify.Info, fmt.Sprintf("Level up! You are now level %d.", p.Level))
	}
	return p, nil
}

// GrantStat increments one named stat.
func (s *Service) GrantStat(ctx context.Context, statID string, amount int) (*storage.Player, error) {
	p, err := s.players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	if p.Stats == nil {
		p.Stats = map[string]int{}
	}
	p.Stats[statID] += amount
	if err := s.players.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
