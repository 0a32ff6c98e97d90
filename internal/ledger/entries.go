package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lifequest/internal/clock"
	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

type EntryDraft struct {
	Kind     EntryKind
	Amount   float64
	Category Category
	Date     time.Time // zero means now
	Notes    string
	Tags     []string
}

// AddEntry logs a transaction. The first entry logged on a calendar day and
// the 10th and 50th entries overall each grant a fixed reward, exactly once.
func (s *Service) AddEntry(ctx context.Context, in EntryDraft) (*storage.Entry, error) {
	if !in.Kind.IsValid() {
		return nil, fmt.Errorf("invalid entry kind: %q", in.Kind)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative, got %v", in.Amount)
	}
	if !in.Category.ValidFor(in.Kind) {
		return nil, fmt.Errorf("invalid %s category: %q", in.Kind, in.Category)
	}

	now := s.clk.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	// The first-of-day reward keys on when entries were logged, not the
	// date they carry, so backdating cannot re-earn it.
	dayStart := clock.StartOfDay(now)
	todayCount, err := s.entries.CountLoggedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	total, err := s.entries.Count(ctx)
	if err != nil {
		return nil, err
	}

	e := &storage.Entry{
		ID:        uuid.New().String(),
		Kind:      string(in.Kind),
		Amount:    in.Amount,
		Category:  string(in.Category),
		Date:      date,
		Notes:     in.Notes,
		Tags:      in.Tags,
		CreatedAt: now,
	}
	if err := s.entries.Insert(ctx, e); err != nil {
		return nil, err
	}

	if todayCount == 0 {
		_, _ = s.rewards.GrantXP(ctx, RewardFirstEntryOfDay)
		s.notifier.Notify(notify.Info, fmt.Sprintf("First ledger entry of the day: +%d XP", RewardFirstEntryOfDay))
	}
	switch total + 1 {
	case 10:
		_, _ = s.rewards.GrantXP(ctx, RewardTenEntries)
		s.notifier.Notify(notify.Info, fmt.Sprintf("10 entries logged: +%d XP", RewardTenEntries))
	case 50:
		_, _ = s.rewards.GrantXP(ctx, RewardFiftyEntries)
		s.notifier.Notify(notify.Info, fmt.Sprintf("50 entries logged: +%d XP", RewardFiftyEntries))
	}

	return e, nil
}

type EntryPatch struct {
	Amount   *float64
	Category *Category
	Date     *time.Time
	Notes    *string
	Tags     []string
}

// UpdateEntry patches an existing entry in place; an unknown id is a silent
// no-op and returns nil.
func (s *Service) UpdateEntry(ctx context.Context, id string, patch EntryPatch) (*storage.Entry, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}

	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, fmt.Errorf("amount must be non-negative, got %v", *patch.Amount)
		}
		e.Amount = *patch.Amount
	}
	if patch.Category != nil {
		if !patch.Category.ValidFor(EntryKind(e.Kind)) {
			return nil, fmt.Errorf("invalid %s category: %q", e.Kind, *patch.Category)
		}
		e.Category = string(*patch.Category)
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if patch.Tags != nil {
		e.Tags = patch.Tags
	}

	if err := s.entries.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEntry removes an entry by id; absent ids are a silent no-op.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

// Entries returns all entries, most recent first.
func (s *Service) Entries(ctx context.Context) ([]storage.Entry, error) {
	return s.entries.ListAll(ctx)
}
