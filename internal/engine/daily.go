package engine

import (
	"context"
	"fmt"

	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

// ResetDailyQuests un-completes every daily quest not completed today and
// returns how many were reset. A quest finished today stays finished, so the
// call is idempotent within a day.
func (s *Service) ResetDailyQuests(ctx context.Context) (int, error) {
	dailies, err := s.quests.ListByKind(ctx, string(KindDaily))
	if err != nil {
		return 0, err
	}

	today := s.today()
	reset := 0
	for i := range dailies {
		q := &dailies[i]
		if !q.Completed || q.LastCompletedDate == today {
			continue
		}
		if err := s.quests.SetCompleted(ctx, q.ID, false); err != nil {
			return reset, err
		}
		reset++
	}
	return reset, nil
}

type CheckResult struct {
	Missed  int
	Penalty *storage.Quest
}

// CheckUnfinishedDailyQuests finds daily quests that went unfinished, issues
// one penalty quest for the whole set, and stamps the set with today's date
// so a repeated check on the same day finds nothing. Intended to run once per
// day-boundary crossing.
func (s *Service) CheckUnfinishedDailyQuests(ctx context.Context) (*CheckResult, error) {
	dailies, err := s.quests.ListByKind(ctx, string(KindDaily))
	if err != nil {
		return nil, err
	}

	today := s.today()
	var unfinished []storage.Quest
	for _, q := range dailies {
		if !q.Completed && q.LastCompletedDate != today {
			unfinished = append(unfinished, q)
		}
	}

	if len(unfinished) == 0 {
		s.notifier.Notify(notify.Info, "All daily quests handled. No penalty today.")
		return &CheckResult{}, nil
	}

	draft, err := s.GeneratePenaltyQuest(unfinished)
	if err != nil {
		return nil, err
	}
	penalty, err := s.AddQuest(ctx, draft)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(unfinished))
	for i, q := range unfinished {
		ids[i] = q.ID
	}
	if err := s.quests.StampLastCompleted(ctx, ids, today); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Warn, fmt.Sprintf("%d daily quest(s) missed.", len(unfinished)))
	return &CheckResult{Missed: len(unfinished), Penalty: penalty}, nil
}
