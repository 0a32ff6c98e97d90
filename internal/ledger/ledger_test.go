package ledger

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"lifequest/internal/clock"
	"lifequest/internal/storage"
)

type grantRecorder struct {
	grants []int
}

func (g *grantRecorder) GrantXP(_ context.Context, amount int) (*storage.Player, error) {
	g.grants = append(g.grants, amount)
	return nil, nil
}

func (g *grantRecorder) total() int {
	sum := 0
	for _, n := range g.grants {
		sum += n
	}
	return sum
}

func newTestLedger(t *testing.T) (*Service, *clock.Fake, *grantRecorder, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	fake := clock.NewFake(time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC))
	rec := &grantRecorder{}
	svc := NewService(db, WithClock(fake), WithRewarder(rec))
	cleanup := func() {
		_ = db.Close()
	}
	return svc, fake, rec, cleanup
}

func logEntry(t *testing.T, svc *Service, kind EntryKind, amount float64, category Category, date time.Time) *storage.Entry {
	t.Helper()
	e, err := svc.AddEntry(context.Background(), EntryDraft{
		Kind:     kind,
		Amount:   amount,
		Category: category,
		Date:     date,
	})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	return e
}

func TestParseEntryKindAliases(t *testing.T) {
	for input, want := range map[string]EntryKind{
		"income":  KindIncome,
		"gold":    KindIncome,
		"expense": KindExpense,
		"mana":    KindExpense,
	} {
		got, err := ParseEntryKind(input)
		if err != nil || got != want {
			t.Fatalf("ParseEntryKind(%q)=%v,%v, want %v", input, got, err, want)
		}
	}
	if _, err := ParseEntryKind("loot"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestAddEntryValidation(t *testing.T) {
	svc, _, _, cleanup := newTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	cases := []struct {
		name  string
		draft EntryDraft
	}{
		{"bad kind", EntryDraft{Kind: "loot", Amount: 1, Category: CategoryOther}},
		{"negative amount", EntryDraft{Kind: KindIncome, Amount: -5, Category: CategorySalary}},
		{"expense category on income", EntryDraft{Kind: KindIncome, Amount: 5, Category: CategoryFood}},
		{"income category on expense", EntryDraft{Kind: KindExpense, Amount: 5, Category: CategorySalary}},
	}
	for _, tc := range cases {
		if _, err := svc.AddEntry(ctx, tc.draft); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	// "other" is valid on both sides.
	if _, err := svc.AddEntry(ctx, EntryDraft{Kind: KindIncome, Amount: 1, Category: CategoryOther}); err != nil {
		t.Fatalf("income/other: %v", err)
	}
	if _, err := svc.AddEntry(ctx, EntryDraft{Kind: KindExpense, Amount: 1, Category: CategoryOther}); err != nil {
		t.Fatalf("expense/other: %v", err)
	}
}

func TestEntryMilestoneRewards(t *testing.T) {
	svc, fake, rec, cleanup := newTestLedger(t)
	defer cleanup()

	// Entry 1: first of the day.
	logEntry(t, svc, KindIncome, 100, CategorySalary, time.Time{})
	if rec.total() != RewardFirstEntryOfDay {
		t.Fatalf("after entry 1 rewards=%d, want %d", rec.total(), RewardFirstEntryOfDay)
	}

	// Entries 2..9 on the same day: nothing new.
	for i := 2; i <= 9; i++ {
		logEntry(t, svc, KindExpense, 5, CategoryFood, time.Time{})
	}
	if rec.total() != RewardFirstEntryOfDay {
		t.Fatalf("after entry 9 rewards=%d, want %d", rec.total(), RewardFirstEntryOfDay)
	}

	// Entry 10: the ten-entry milestone, still not a first-of-day.
	logEntry(t, svc, KindExpense, 5, CategoryFood, time.Time{})
	want := RewardFirstEntryOfDay + RewardTenEntries
	if rec.total() != want {
		t.Fatalf("after entry 10 rewards=%d, want %d", rec.total(), want)
	}

	// A new day revives the first-of-day reward.
	fake.AdvanceDays(1)
	logEntry(t, svc, KindExpense, 5, CategoryLeisure, time.Time{})
	want += RewardFirstEntryOfDay
	if rec.total() != want {
		t.Fatalf("after day roll rewards=%d, want %d", rec.total(), want)
	}

	// Up to entry 50: exactly one more milestone fires.
	for i := 12; i <= 50; i++ {
		logEntry(t, svc, KindExpense, 1, CategoryOther, time.Time{})
	}
	want += RewardFiftyEntries
	if rec.total() != want {
		t.Fatalf("after entry 50 rewards=%d, want %d", rec.total(), want)
	}
}

func TestBackdatedEntriesRewardOncePerDay(t *testing.T) {
	svc, fake, rec, cleanup := newTestLedger(t)
	defer cleanup()

	// Two entries dated yesterday, both logged today. The reward keys on
	// the log day, so only the first one earns it.
	yesterday := fake.Now().AddDate(0, 0, -1)
	logEntry(t, svc, KindExpense, 40, CategoryFood, yesterday)
	logEntry(t, svc, KindExpense, 15, CategoryTransport, yesterday)
	if rec.total() != RewardFirstEntryOfDay {
		t.Fatalf("rewards=%d after two same-day logs, want %d", rec.total(), RewardFirstEntryOfDay)
	}

	// A dated-today entry still isn't first; only a new log day is.
	logEntry(t, svc, KindExpense, 5, CategoryFood, fake.Now())
	if rec.total() != RewardFirstEntryOfDay {
		t.Fatalf("rewards=%d after dated-today entry, want %d", rec.total(), RewardFirstEntryOfDay)
	}

	fake.AdvanceDays(1)
	logEntry(t, svc, KindExpense, 5, CategoryFood, yesterday)
	if rec.total() != 2*RewardFirstEntryOfDay {
		t.Fatalf("rewards=%d after day roll, want %d", rec.total(), 2*RewardFirstEntryOfDay)
	}
}

func seedWindowEntries(t *testing.T, svc *Service, fake *clock.Fake) {
	t.Helper()
	now := fake.Now()

	logEntry(t, svc, KindIncome, 1000, CategorySalary, now)
	logEntry(t, svc, KindExpense, 120, CategoryFood, now.AddDate(0, 0, -2))
	logEntry(t, svc, KindExpense, 80, CategoryTransport, now.AddDate(0, 0, -6))
	logEntry(t, svc, KindIncome, 250, CategoryBonus, now.AddDate(0, 0, -10))
	logEntry(t, svc, KindExpense, 400, CategoryHousing, now.AddDate(0, 0, -20))
	logEntry(t, svc, KindIncome, 90, CategoryGift, now.AddDate(0, -5, 0))
	logEntry(t, svc, KindExpense, 60, CategoryLeisure, now.AddDate(0, -14, 0))
}

func TestHistoryMatchesSummary(t *testing.T) {
	svc, fake, _, cleanup := newTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	seedWindowEntries(t, svc, fake)

	for _, w := range []Window{WindowWeekly, WindowMonthly, WindowAllTime} {
		sum, err := svc.Summary(ctx, w)
		if err != nil {
			t.Fatalf("summary %s: %v", w, err)
		}
		buckets, err := svc.HistorySeries(ctx, w)
		if err != nil {
			t.Fatalf("history %s: %v", w, err)
		}

		var income, expense float64
		for _, b := range buckets {
			income += b.Income
			expense += b.Expense
		}
		if math.Abs(income-sum.TotalIncome) > 1e-9 {
			t.Fatalf("%s: bucket income=%v, summary=%v", w, income, sum.TotalIncome)
		}
		if math.Abs(expense-sum.TotalExpense) > 1e-9 {
			t.Fatalf("%s: bucket expense=%v, summary=%v", w, expense, sum.TotalExpense)
		}

		// Bucket boundaries are gap-free.
		for i := 1; i < len(buckets); i++ {
			if !buckets[i].Start.Equal(buckets[i-1].End) {
				t.Fatalf("%s: bucket %d starts at %v, previous ends at %v", w, i, buckets[i].Start, buckets[i-1].End)
			}
		}
	}

	// Window sizes per the chart layout.
	weekly, _ := svc.HistorySeries(ctx, WindowWeekly)
	if len(weekly) != 7 {
		t.Fatalf("weekly buckets=%d, want 7", len(weekly))
	}
	monthly, _ := svc.HistorySeries(ctx, WindowMonthly)
	if len(monthly) != 5 {
		t.Fatalf("monthly buckets=%d, want 5", len(monthly))
	}
	all, _ := svc.HistorySeries(ctx, WindowAllTime)
	if len(all) != 12 {
		t.Fatalf("all-time buckets=%d, want 12", len(all))
	}
}

func TestWindowFiltering(t *testing.T) {
	svc, fake, _, cleanup := newTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	seedWindowEntries(t, svc, fake)

	weekly, err := svc.Summary(ctx, WindowWeekly)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	// Last 7 calendar days: salary 1000 in, food 120 + transport 80 out.
	if weekly.TotalIncome != 1000 || weekly.TotalExpense != 200 {
		t.Fatalf("weekly in/out=%v/%v, want 1000/200", weekly.TotalIncome, weekly.TotalExpense)
	}
	if weekly.NetWorth != 800 {
		t.Fatalf("weekly net=%v, want 800", weekly.NetWorth)
	}

	monthly, err := svc.Summary(ctx, WindowMonthly)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if monthly.TotalIncome != 1250 || monthly.TotalExpense != 600 {
		t.Fatalf("monthly in/out=%v/%v, want 1250/600", monthly.TotalIncome, monthly.TotalExpense)
	}

	all, err := svc.Summary(ctx, WindowAllTime)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all.TotalIncome != 1340 || all.TotalExpense != 660 {
		t.Fatalf("all in/out=%v/%v, want 1340/660", all.TotalIncome, all.TotalExpense)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	svc, fake, _, cleanup := newTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	// Empty window: no shares, no division by zero.
	shares, err := svc.CategoryBreakdown(ctx, WindowWeekly)
	if err != nil {
		t.Fatalf("empty breakdown: %v", err)
	}
	if len(shares) != 0 {
		t.Fatalf("empty breakdown has %d shares", len(shares))
	}

	now := fake.Now()
	logEntry(t, svc, KindExpense, 300, CategoryFood, now)
	logEntry(t, svc, KindExpense, 100, CategoryFood, now.AddDate(0, 0, -1))
	logEntry(t, svc, KindExpense, 500, CategoryHousing, now)
	logEntry(t, svc, KindExpense, 100, CategoryLeisure, now)
	logEntry(t, svc, KindIncome, 5000, CategorySalary, now) // must not appear

	shares, err = svc.CategoryBreakdown(ctx, WindowWeekly)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(shares) != 3 {
		t.Fatalf("share count=%d, want 3", len(shares))
	}
	if shares[0].Category != CategoryHousing || shares[0].Amount != 500 {
		t.Fatalf("top share=%v %v, want housing 500", shares[0].Category, shares[0].Amount)
	}
	if shares[1].Category != CategoryFood || shares[1].Amount != 400 {
		t.Fatalf("second share=%v %v, want food 400", shares[1].Category, shares[1].Amount)
	}
	if shares[0].Percentage != 50 {
		t.Fatalf("top pct=%v, want 50", shares[0].Percentage)
	}

	var pct float64
	for _, s := range shares {
		pct += s.Percentage
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", pct)
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	svc, fake, _, cleanup := newTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	e := logEntry(t, svc, KindExpense, 50, CategoryFood, fake.Now())

	newAmount := 75.0
	newCat := CategoryLeisure
	updated, err := svc.UpdateEntry(ctx, e.ID, EntryPatch{Amount: &newAmount, Category: &newCat})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 75 || updated.Category != string(CategoryLeisure) {
		t.Fatalf("updated=%v/%v", updated.Amount, updated.Category)
	}

	// A category invalid for the entry's kind is rejected.
	badCat := CategorySalary
	if _, err := svc.UpdateEntry(ctx, e.ID, EntryPatch{Category: &badCat}); err == nil {
		t.Fatalf("expected error for income category on expense entry")
	}

	// Unknown ids are silent no-ops for both update and delete.
	got, err := svc.UpdateEntry(ctx, "no-such-id", EntryPatch{Amount: &newAmount})
	if err != nil || got != nil {
		t.Fatalf("update unknown id: got=%v err=%v, want nil/nil", got, err)
	}
	if err := svc.DeleteEntry(ctx, "no-such-id"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}

	if err := svc.DeleteEntry(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	entries, err := svc.Entries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries after delete=%d, want 0", len(entries))
	}
}

func TestArtifactsAndBuffs(t *testing.T) {
	svc, _, rec, cleanup := newTestLedger(t)
	defer cleanup()
	ctx := context.Background()

	a, err := svc.AddArtifact(ctx, ArtifactDraft{Name: "Ergonomic Chair", Value: 350})
	if err != nil {
		t.Fatalf("add artifact: %v", err)
	}
	if rec.total() != RewardNewArtifact {
		t.Fatalf("artifact reward=%d, want %d", rec.total(), RewardNewArtifact)
	}

	b, err := svc.AddBuff(ctx, BuffDraft{Name: "Dividend Drip", ValuePerMonth: 40, Source: "broker"})
	if err != nil {
		t.Fatalf("add buff: %v", err)
	}
	if !b.Active {
		t.Fatalf("new buff not active")
	}
	if rec.total() != RewardNewArtifact+RewardNewBuff {
		t.Fatalf("rewards=%d, want %d", rec.total(), RewardNewArtifact+RewardNewBuff)
	}

	sum, err := svc.Summary(ctx, WindowWeekly)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalPassiveIncome != 40 {
		t.Fatalf("passive income=%v, want 40", sum.TotalPassiveIncome)
	}
	if sum.TotalArtifactValue != 350 {
		t.Fatalf("artifact value=%v, want 350", sum.TotalArtifactValue)
	}

	// Paused buffs drop out of the snapshot; toggling is reversible.
	toggled, err := svc.ToggleBuff(ctx, b.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Active {
		t.Fatalf("buff still active after toggle")
	}
	sum, _ = svc.Summary(ctx, WindowWeekly)
	if sum.TotalPassiveIncome != 0 {
		t.Fatalf("passive income=%v after pause, want 0", sum.TotalPassiveIncome)
	}

	// Unknown toggle id is a silent no-op.
	got, err := svc.ToggleBuff(ctx, "no-such-id")
	if err != nil || got != nil {
		t.Fatalf("toggle unknown id: got=%v err=%v, want nil/nil", got, err)
	}

	if err := svc.DeleteArtifact(ctx, a.ID); err != nil {
		t.Fatalf("delete artifact: %v", err)
	}
	sum, _ = svc.Summary(ctx, WindowWeekly)
	if sum.TotalArtifactValue != 0 {
		t.Fatalf("artifact value=%v after delete, want 0", sum.TotalArtifactValue)
	}
}
