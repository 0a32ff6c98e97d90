package engine

import (
	"context"
	"fmt"

	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

type QuestDraft struct {
	Title       string
	Description string
	Kind        Kind
	XPReward    int
	Stats       []string
	Tags        []string
	Difficulty  Difficulty // dungeon quests only
}

// AddQuest appends a new quest to the collection. For dungeon quests the XP
// reward is derived from the rank; whatever the draft carries is ignored.
func (s *Service) AddQuest(ctx context.Context, in QuestDraft) (*storage.Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Kind.IsValid() {
		return nil, fmt.Errorf("invalid quest kind: %q", in.Kind)
	}
	if in.XPReward < 0 {
		return nil, fmt.Errorf("xp reward must be non-negative, got %d", in.XPReward)
	}

	xpReward := in.XPReward
	var difficulty *string
	if in.Kind == KindDungeon {
		xp, err := DungeonXP(in.Difficulty)
		if err != nil {
			return nil, err
		}
		xpReward = xp
		d := string(in.Difficulty)
		difficulty = &d
	}

	id, err := s.quests.Insert(ctx, storage.QuestInsert{
		Title:       title,
		Description: in.Description,
		Kind:        string(in.Kind),
		XPReward:    xpReward,
		Stats:       in.Stats,
		Tags:        in.Tags,
		Difficulty:  difficulty,
	})
	if err != nil {
		return nil, err
	}

	if in.Kind == KindPenalty {
		s.notifier.Notify(notify.Warn, fmt.Sprintf("Penalty quest issued: %s", title))
	}

	return s.quests.Get(ctx, id)
}
