package ledger

import (
	"fmt"
	"strings"
	"time"
)

// EntryKind separates income ("gold") from expense ("mana") transactions.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

func (k EntryKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseEntryKind accepts the enum values and the in-world aliases.
func ParseEntryKind(input string) (EntryKind, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "income", "gold":
		return KindIncome, nil
	case "expense", "mana":
		return KindExpense, nil
	default:
		return "", fmt.Errorf("invalid entry kind: %q", input)
	}
}

type Category string

const (
	CategorySalary     Category = "salary"
	CategoryBonus      Category = "bonus"
	CategoryInvestment Category = "investment"
	CategoryGift       Category = "gift"

	CategoryFood      Category = "food"
	CategoryHousing   Category = "housing"
	CategoryTransport Category = "transport"
	CategoryLeisure   Category = "leisure"
	CategoryEquipment Category = "equipment"

	CategoryOther Category = "other"
)

var incomeCategories = []Category{CategorySalary, CategoryBonus, CategoryInvestment, CategoryGift, CategoryOther}
var expenseCategories = []Category{CategoryFood, CategoryHousing, CategoryTransport, CategoryLeisure, CategoryEquipment, CategoryOther}

// ValidFor reports whether the category belongs to the given kind's sub-type
// set.
func (c Category) ValidFor(kind EntryKind) bool {
	set := expenseCategories
	if kind == KindIncome {
		set = incomeCategories
	}
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func ParseCategory(input string, kind EntryKind) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(input)))
	if !c.ValidFor(kind) {
		return "", fmt.Errorf("invalid %s category: %q", kind, input)
	}
	return c, nil
}

// Window is the aggregation horizon for derived computations.
type Window string

const (
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
	WindowAllTime Window = "all"
)

func (w Window) IsValid() bool {
	return w == WindowWeekly || w == WindowMonthly || w == WindowAllTime
}

func ParseWindow(input string) (Window, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "weekly", "week", "w":
		return WindowWeekly, nil
	case "monthly", "month", "m":
		return WindowMonthly, nil
	case "all", "alltime", "all-time", "a":
		return WindowAllTime, nil
	default:
		return "", fmt.Errorf("invalid window: %q (want weekly, monthly or all)", input)
	}
}

// Summary is derived, never persisted.
type Summary struct {
	TotalIncome        float64
	TotalExpense       float64
	NetWorth           float64
	TotalPassiveIncome float64
	TotalArtifactValue float64
}

// HistoryBucket is one chart bucket; entries are assigned by
// Start <= date < End.
type HistoryBucket struct {
	Label   string
	Start   time.Time
	End     time.Time
	Income  float64
	Expense float64
	Net     float64
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category   Category
	Amount     float64
	Percentage float64
}
