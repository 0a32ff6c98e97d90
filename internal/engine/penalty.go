package engine

import (
	"lifequest/internal/storage"
)

// Penalty archetypes. Selection is deliberately random flavor, not a
// correctness-relevant algorithm; tests pin the RNG seed.
type penaltyTemplate struct {
	Title       string
	Description string
	XPReward    int
	Tags        []string
}

var penaltyTemplates = []penaltyTemplate{
	{
		Title:       "March of the Unworthy",
		Description: "Walk 5 km before the next day boundary. No shortcuts.",
		XPReward:    15,
		Tags:        []string{"penalty", "endurance"},
	},
	{
		Title:       "Cold Water Trial",
		Description: "End your next shower with 60 seconds of cold water.",
		XPReward:    15,
		Tags:        []string{"penalty", "discipline"},
	},
	{
		Title:       "The Silent Hour",
		Description: "One full hour with no screens, music, or distractions.",
		XPReward:    10,
		Tags:        []string{"penalty", "focus"},
	},
	{
		Title:       "Debt of a Hundred Push-ups",
		Description: "100 push-ups owed, paid in any number of sets today.",
		XPReward:    20,
		Tags:        []string{"penalty", "strength"},
	},
	{
		Title:       "Fasting Bell",
		Description: "Skip all snacks and sugar until the next day boundary.",
		XPReward:    15,
		Tags:        []string{"penalty", "restraint"},
	},
}

// GeneratePenaltyQuest builds a penalty quest draft from the set of missed
// daily quests. The stat set is drawn from the union (with repetition) of the
// inputs' stats, paired with the default stat at even odds; it is never
// empty. Calling with an empty input set is a precondition violation.
func (s *Service) GeneratePenaltyQuest(unfinished []storage.Quest) (QuestDraft, error) {
	if len(unfinished) == 0 {
		return QuestDraft{}, EmptyPenaltyInputError{}
	}

	tpl := penaltyTemplates[s.rng.Intn(len(penaltyTemplates))]

	var pool []string
	for _, q := range unfinished {
		pool = append(pool, q.Stats...)
	}

	stats := []string{DefaultStat}
	if len(pool) > 0 {
		pick := pool[s.rng.Intn(len(pool))]
		if pick != DefaultStat && s.rng.Intn(2) == 0 {
			stats = []string{pick, DefaultStat}
		} else {
			stats = []string{pick}
		}
	}

	return QuestDraft{
		Title:       tpl.Title,
		Description: tpl.Description,
		Kind:        KindPenalty,
		XPReward:    tpl.XPReward,
		Stats:       stats,
		Tags:        tpl.Tags,
	}, nil
}
