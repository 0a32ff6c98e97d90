package engine

import (
	"context"
	"database/sql"

	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

// DefaultQuests is the built-in starter set, restored on first run and by
// ResetAllQuests.
func DefaultQuests() []QuestDraft {
	return []QuestDraft{
		{
			Title:       "Morning Routine",
			Description: "Wake up on time, make the bed, drink a glass of water.",
			Kind:        KindDaily,
			XPReward:    20,
			Stats:       []string{StatVIT},
			Tags:        []string{"routine"},
		},
		{
			Title:       "Train Your Body",
			Description: "At least 30 minutes of deliberate exercise.",
			Kind:        KindDaily,
			XPReward:    30,
			Stats:       []string{StatSTR},
			Tags:        []string{"fitness"},
		},
		{
			Title:       "Study Session",
			Description: "Learn something for 30 focused minutes.",
			Kind:        KindDaily,
			XPReward:    30,
			Stats:       []string{StatINT},
			Tags:        []string{"growth"},
		},
		{
			Title:       "Name Your Ascension Goal",
			Description: "Write down the one goal this season is about.",
			Kind:        KindMain,
			XPReward:    100,
			Stats:       []string{StatWIS},
		},
		{
			Title:       "Reach Out to Someone",
			Description: "Message or call a friend you have not spoken to in a while.",
			Kind:        KindMain,
			XPReward:    50,
			Stats:       []string{StatCHA},
		},
	}
}

// EnsureDefaults seeds the starter quests when the collection is empty, which
// also covers recovery from missing or wiped persisted data.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	n, err := s.quests.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return s.seedDefaults(ctx)
}

// ResetAllQuests discards every quest and restores the built-in set, in one
// transaction so a failed reseed never leaves an empty log. Destructive;
// confirmation is the caller's concern.
func (s *Service) ResetAllQuests(ctx context.Context) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.quests.DeleteAllTx(ctx, tx); err != nil {
			return err
		}
		for _, d := range DefaultQuests() {
			if _, err := s.quests.InsertTx(ctx, tx, draftInsert(d)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(notify.Warn, "All quests wiped and restored to the starter set.")
	return nil
}

func (s *Service) seedDefaults(ctx context.Context) error {
	for _, d := range DefaultQuests() {
		if _, err := s.quests.Insert(ctx, draftInsert(d)); err != nil {
			return err
		}
	}
	return nil
}

func draftInsert(d QuestDraft) storage.QuestInsert {
	return storage.QuestInsert{
		Title:       d.Title,
		Description: d.Description,
		Kind:        string(d.Kind),
		XPReward:    d.XPReward,
		Stats:       d.Stats,
		Tags:        d.Tags,
	}
}
