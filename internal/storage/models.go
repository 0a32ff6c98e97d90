package storage

import "time"

// Player is the single progression snapshot: running XP total, current level,
// the threshold for the next level, and named stat values.
type Player struct {
	Key     string
	Level   int
	XPTotal int
	XPNext  int
	Stats   map[string]int
}

// Quest dates are day-granularity strings (YYYY-MM-DD); empty means unset.
type Quest struct {
	ID                int64
	Title             string
	Description       string
	Kind              string
	XPReward          int
	Completed         bool
	CompletedDate     string
	LastCompletedDate string
	Streak            int
	Stats             []string
	Tags              []string
	Difficulty        *string
	CreatedAt         time.Time
}

// Entry is a single income or expense transaction.
type Entry struct {
	ID        string
	Kind      string
	Amount    float64
	Category  string
	Date      time.Time
	Notes     string
	Tags      []string
	CreatedAt time.Time
}

// Artifact is a durable owned asset with a flat value.
type Artifact struct {
	ID          string
	Name        string
	Value       float64
	Description string
	AcquiredAt  time.Time
}

// Buff is a recurring monthly income source.
type Buff struct {
	ID            string
	Name          string
	ValuePerMonth float64
	Source        string
	StartDate     time.Time
	Active        bool
}

// Reflection is an append-only "lessons learned" record.
type Reflection struct {
	ID         string
	Name       string
	Event      string
	Reflection string
	Insight    string
	Date       time.Time
	Stats      []string
}
