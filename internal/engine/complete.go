package engine

import (
	"context"

	"lifequest/internal/storage"
)

type CompleteResult struct {
	Quest            *storage.Quest
	AlreadyCompleted bool
	XPAwarded        int
	StatsAwarded     []string
	LevelBefore      int
	LevelAfter       int
	LevelUp          bool
}

// nextStreak applies the daily streak rules given the prior state and the
// current calendar day. Consecutive-day completions extend the streak; any
// gap resets it to 1. A last-completed date of today on an open quest means
// the missed-quest check stamped it (and zeroed the streak), so completing
// it now starts a fresh streak.
func nextStreak(prev int, lastCompleted, today, yesterday string) int {
	switch lastCompleted {
	case "":
		return 1
	case today:
		if prev == 0 {
			return 1
		}
		return prev
	case yesterday:
		return prev + 1
	default:
		return 1
	}
}

// CompleteQuest marks the quest done for today, updates the daily streak, and
// applies the reward (XP plus one point per listed stat). Completing an
// already-completed quest is a no-op and never double-awards.
func (s *Service) CompleteQuest(ctx context.Context, id int64) (*CompleteResult, error) {
	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NotFoundError{ID: id}
	}
	if q.Completed {
		return &CompleteResult{Quest: q, AlreadyCompleted: true}, nil
	}

	today := s.today()
	q.Completed = true
	q.CompletedDate = today
	if q.Kind == string(KindDaily) {
		q.Streak = nextStreak(q.Streak, q.LastCompletedDate, today, s.yesterday())
		q.LastCompletedDate = today
	}
	if err := s.quests.UpdateCompletion(ctx, q); err != nil {
		return nil, err
	}

	before, err := s.players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := before.Level

	after, err := s.GrantXP(ctx, q.XPReward)
	if err != nil {
		return nil, err
	}
	for _, stat := range q.Stats {
		if after, err = s.GrantStat(ctx, stat, 1); err != nil {
			return nil, err
		}
	}

	return &CompleteResult{
		Quest:        q,
		XPAwarded:    q.XPReward,
		StatsAwarded: q.Stats,
		LevelBefore:  levelBefore,
		LevelAfter:   after.Level,
		LevelUp:      after.Level > levelBefore,
	}, nil
}
