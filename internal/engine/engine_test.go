package engine

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifequest/internal/clock"
	"lifequest/internal/notify"
	"lifequest/internal/storage"
)

func newTestService(t *testing.T, extra ...Option) (*Service, *clock.Fake, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	fake := clock.NewFake(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	opts := append([]Option{
		WithClock(fake),
		WithRand(rand.New(rand.NewSource(1))),
	}, extra...)
	svc := NewService(db, opts...)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, fake, cleanup
}

func addDaily(t *testing.T, svc *Service, title string, xp int, stats ...string) *storage.Quest {
	t.Helper()
	q, err := svc.AddQuest(context.Background(), QuestDraft{
		Title:    title,
		Kind:     KindDaily,
		XPReward: xp,
		Stats:    stats,
	})
	if err != nil {
		t.Fatalf("add daily %q: %v", title, err)
	}
	return q
}

func TestDungeonXPByRank(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	want := map[Difficulty]int{
		DifficultyE: 250,
		DifficultyD: 500,
		DifficultyC: 1000,
		DifficultyB: 2500,
		DifficultyA: 5000,
		DifficultyS: 10000,
	}
	for rank, xp := range want {
		q, err := svc.AddQuest(ctx, QuestDraft{
			Title:      "Dungeon " + string(rank),
			Kind:       KindDungeon,
			XPReward:   1, // must be ignored
			Difficulty: rank,
		})
		if err != nil {
			t.Fatalf("add dungeon %s: %v", rank, err)
		}
		if q.XPReward != xp {
			t.Fatalf("dungeon %s xp=%d, want %d", rank, q.XPReward, xp)
		}
		if q.Difficulty == nil || *q.Difficulty != string(rank) {
			t.Fatalf("dungeon %s difficulty not persisted", rank)
		}
	}

	if _, err := svc.AddQuest(ctx, QuestDraft{Title: "Bad", Kind: KindDungeon, Difficulty: "F"}); err == nil {
		t.Fatalf("expected error for unknown rank")
	}
}

func TestCompleteQuestIdempotent(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := addDaily(t, svc, "Meditate", 40, StatWIS)

	res1, err := svc.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res1.AlreadyCompleted {
		t.Fatalf("first completion flagged as repeat")
	}
	if res1.XPAwarded != 40 {
		t.Fatalf("xp awarded=%d, want 40", res1.XPAwarded)
	}

	res2, err := svc.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if !res2.AlreadyCompleted {
		t.Fatalf("expected AlreadyCompleted on repeat")
	}
	if res2.XPAwarded != 0 {
		t.Fatalf("repeat awarded %d xp, want 0", res2.XPAwarded)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.XPTotal != 40 {
		t.Fatalf("player xp=%d, want 40 (no double award)", p.XPTotal)
	}
	if p.Stats[StatWIS] != 1 {
		t.Fatalf("WIS=%d, want 1", p.Stats[StatWIS])
	}
}

func TestCompleteQuestNotFound(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.CompleteQuest(context.Background(), 9999)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err=%v, want NotFoundError", err)
	}
}

func TestDailyStreakContinuityAndGap(t *testing.T) {
	svc, fake, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := addDaily(t, svc, "Run", 10, StatSTR)

	complete := func(wantStreak int) {
		t.Helper()
		res, err := svc.CompleteQuest(ctx, q.ID)
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if res.Quest.Streak != wantStreak {
			t.Fatalf("streak=%d, want %d", res.Quest.Streak, wantStreak)
		}
	}

	complete(1)

	// Next day: reset re-opens the quest, completion extends the streak.
	fake.AdvanceDays(1)
	if _, err := svc.ResetDailyQuests(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	complete(2)

	fake.AdvanceDays(1)
	if _, err := svc.ResetDailyQuests(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	complete(3)

	// Two-day gap resets the streak to 1.
	fake.AdvanceDays(2)
	if _, err := svc.ResetDailyQuests(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	complete(1)
}

func TestMissedDailyRestartsStreak(t *testing.T) {
	svc, fake, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := addDaily(t, svc, "Journal", 10, StatWIS)

	// Build a 3-day streak.
	for day := 0; day < 3; day++ {
		if day > 0 {
			fake.AdvanceDays(1)
			if _, err := svc.ResetDailyQuests(ctx); err != nil {
				t.Fatalf("reset: %v", err)
			}
		}
		if _, err := svc.CompleteQuest(ctx, q.ID); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}

	// Next boundary: yesterday's completion is intact, so no penalty; the
	// reset re-opens the quest and it then goes unfinished all day.
	fake.AdvanceDays(1)
	res0, err := svc.CheckUnfinishedDailyQuests(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res0.Missed != 0 {
		t.Fatalf("missed=%d right after completion, want 0", res0.Missed)
	}
	if _, err := svc.ResetDailyQuests(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// The boundary after the skipped day stamps the quest and breaks the
	// streak.
	fake.AdvanceDays(1)
	res1, err := svc.CheckUnfinishedDailyQuests(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res1.Missed != 1 {
		t.Fatalf("missed=%d, want 1", res1.Missed)
	}
	stamped, _ := svc.QuestRepo().Get(ctx, q.ID)
	if stamped.Streak != 0 {
		t.Fatalf("streak after miss=%d, want 0", stamped.Streak)
	}

	// Completing later the same day starts over at 1.
	res, err := svc.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("complete after miss: %v", err)
	}
	if res.Quest.Streak != 1 {
		t.Fatalf("streak=%d, want 1 after a miss", res.Quest.Streak)
	}
}

func TestResetDailyPreservesToday(t *testing.T) {
	svc, fake, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	doneToday := addDaily(t, svc, "Done today", 10)
	doneYesterday := addDaily(t, svc, "Done yesterday", 10)

	if _, err := svc.CompleteQuest(ctx, doneYesterday.ID); err != nil {
		t.Fatalf("complete yesterday's: %v", err)
	}
	fake.AdvanceDays(1)
	if _, err := svc.CompleteQuest(ctx, doneToday.ID); err != nil {
		t.Fatalf("complete today's: %v", err)
	}

	n, err := svc.ResetDailyQuests(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 1 {
		t.Fatalf("reset count=%d, want 1", n)
	}

	q1, _ := svc.QuestRepo().Get(ctx, doneToday.ID)
	if !q1.Completed {
		t.Fatalf("today's completion was lost on reset")
	}
	q2, _ := svc.QuestRepo().Get(ctx, doneYesterday.ID)
	if q2.Completed {
		t.Fatalf("yesterday's daily not re-opened")
	}

	// Second reset on the same day is a no-op.
	n, err = svc.ResetDailyQuests(ctx)
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if n != 0 {
		t.Fatalf("second reset count=%d, want 0", n)
	}
}

func TestPenaltyCheckOncePerDay(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	addDaily(t, svc, "Skipped 1", 10, StatSTR)
	addDaily(t, svc, "Skipped 2", 10, StatINT)

	res, err := svc.CheckUnfinishedDailyQuests(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Missed != 2 {
		t.Fatalf("missed=%d, want 2", res.Missed)
	}
	if res.Penalty == nil {
		t.Fatalf("expected a penalty quest")
	}
	if res.Penalty.Kind != string(KindPenalty) {
		t.Fatalf("penalty kind=%q", res.Penalty.Kind)
	}
	if len(res.Penalty.Stats) == 0 {
		t.Fatalf("penalty quest has no stats")
	}

	// Same-day re-check must not issue a second penalty.
	res2, err := svc.CheckUnfinishedDailyQuests(ctx)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if res2.Missed != 0 || res2.Penalty != nil {
		t.Fatalf("second check missed=%d penalty=%v, want none", res2.Missed, res2.Penalty)
	}

	penalties, err := svc.QuestRepo().ListByKind(ctx, string(KindPenalty))
	if err != nil {
		t.Fatalf("list penalties: %v", err)
	}
	if len(penalties) != 1 {
		t.Fatalf("penalty count=%d, want 1", len(penalties))
	}
}

func hasNotice(rec *notify.Recorder, level notify.Level, substr string) bool {
	for _, n := range rec.Notices {
		if n.Level == level && strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

func TestNotifications(t *testing.T) {
	rec := &notify.Recorder{}
	svc, fake, cleanup := newTestService(t, WithNotifier(rec))
	defer cleanup()
	ctx := context.Background()

	q := addDaily(t, svc, "Meditate", 10, StatWIS)
	if _, err := svc.CompleteQuest(ctx, q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Clean boundary: everything done yesterday.
	fake.AdvanceDays(1)
	if _, err := svc.CheckUnfinishedDailyQuests(ctx); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !hasNotice(rec, notify.Info, "All daily quests handled") {
		t.Fatalf("missing all-handled notice, got %v", rec.Notices)
	}
	if _, err := svc.ResetDailyQuests(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// Left unfinished: the next boundary warns and issues a penalty.
	fake.AdvanceDays(1)
	if _, err := svc.CheckUnfinishedDailyQuests(ctx); err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !hasNotice(rec, notify.Warn, "1 daily quest(s) missed") {
		t.Fatalf("missing missed warning, got %v", rec.Notices)
	}
	if !hasNotice(rec, notify.Warn, "Penalty quest issued") {
		t.Fatalf("missing penalty notice, got %v", rec.Notices)
	}

	if _, err := svc.GrantXP(ctx, 100); err != nil {
		t.Fatalf("grant xp: %v", err)
	}
	if !hasNotice(rec, notify.Info, "level 2") {
		t.Fatalf("missing level-up notice, got %v", rec.Notices)
	}
}

func TestGeneratePenaltyQuest(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()

	var empty EmptyPenaltyInputError
	if _, err := svc.GeneratePenaltyQuest(nil); !errors.As(err, &empty) {
		t.Fatalf("empty input err=%v, want EmptyPenaltyInputError", err)
	}

	// The stat set is never empty regardless of the inputs' stats.
	for i := 0; i < 50; i++ {
		draft, err := svc.GeneratePenaltyQuest([]storage.Quest{
			{Title: "A", Stats: []string{StatSTR}},
			{Title: "B", Stats: nil},
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(draft.Stats) == 0 {
			t.Fatalf("empty stat set on iteration %d", i)
		}
		if draft.Kind != KindPenalty {
			t.Fatalf("kind=%q, want penalty", draft.Kind)
		}
		for _, s := range draft.Stats {
			if s != StatSTR && s != DefaultStat {
				t.Fatalf("unexpected stat %q", s)
			}
		}
	}

	// No stats on any input falls back to the default stat.
	draft, err := svc.GeneratePenaltyQuest([]storage.Quest{{Title: "Bare"}})
	if err != nil {
		t.Fatalf("generate bare: %v", err)
	}
	if len(draft.Stats) != 1 || draft.Stats[0] != DefaultStat {
		t.Fatalf("bare stats=%v, want [%s]", draft.Stats, DefaultStat)
	}
}

func TestXPLevelGrowth(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// Thresholds grow by 1.5x: 100, 150, 225.
	p, err := svc.GrantXP(ctx, 99)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if p.Level != 1 {
		t.Fatalf("level=%d, want 1 at 99 xp", p.Level)
	}

	p, err = svc.GrantXP(ctx, 1)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if p.Level != 2 || p.XPNext != 150 {
		t.Fatalf("level=%d next=%d, want 2/150 at 100 xp", p.Level, p.XPNext)
	}

	// One large award can cross several thresholds at once.
	p, err = svc.GrantXP(ctx, 125)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if p.Level != 3 || p.XPNext != 225 {
		t.Fatalf("level=%d next=%d, want 3/225 at 225 xp", p.Level, p.XPNext)
	}

	if _, err := svc.GrantXP(ctx, -1); err == nil {
		t.Fatalf("expected error for negative xp")
	}
}

func TestEnsureDefaultsAndResetAll(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	all, err := svc.QuestRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != len(DefaultQuests()) {
		t.Fatalf("seeded %d quests, want %d", len(all), len(DefaultQuests()))
	}

	// Second call must not duplicate the starter set.
	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	n, _ := svc.QuestRepo().Count(ctx)
	if n != len(DefaultQuests()) {
		t.Fatalf("count after re-ensure=%d, want %d", n, len(DefaultQuests()))
	}

	// A wiped log comes back as exactly the starter set, extras gone.
	addDaily(t, svc, "Extra", 5)
	if err := svc.ResetAllQuests(ctx); err != nil {
		t.Fatalf("reset all: %v", err)
	}
	all, _ = svc.QuestRepo().ListAll(ctx)
	if len(all) != len(DefaultQuests()) {
		t.Fatalf("after reset-all %d quests, want %d", len(all), len(DefaultQuests()))
	}
	for i := range all {
		if all[i].Title == "Extra" {
			t.Fatalf("extra quest survived reset-all")
		}
	}
}

func TestMorningRoutineWeek(t *testing.T) {
	svc, fake, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	dailies, err := svc.QuestRepo().ListByKind(ctx, string(KindDaily))
	if err != nil {
		t.Fatalf("list dailies: %v", err)
	}
	var morning *storage.Quest
	for i := range dailies {
		if dailies[i].Title == "Morning Routine" {
			morning = &dailies[i]
		}
	}
	if morning == nil {
		t.Fatalf("starter set is missing Morning Routine")
	}

	// A full week of morning routines, with one slip on day 5.
	for day := 1; day <= 7; day++ {
		if day != 5 {
			if _, err := svc.CompleteQuest(ctx, morning.ID); err != nil {
				t.Fatalf("day %d complete: %v", day, err)
			}
		}
		fake.AdvanceDays(1)
		// Day boundary: the missed check runs first, then the reset.
		if _, err := svc.CheckUnfinishedDailyQuests(ctx); err != nil {
			t.Fatalf("day %d check: %v", day, err)
		}
		if _, err := svc.ResetDailyQuests(ctx); err != nil {
			t.Fatalf("day %d reset: %v", day, err)
		}
	}

	q, err := svc.QuestRepo().Get(ctx, morning.ID)
	if err != nil {
		t.Fatalf("get morning: %v", err)
	}
	// Streak rebuilt after the slip: days 6 and 7.
	if q.Streak != 2 {
		t.Fatalf("streak=%d, want 2 after a mid-week slip", q.Streak)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.XPTotal != 6*20 {
		t.Fatalf("player xp=%d, want %d", p.XPTotal, 6*20)
	}
	if p.Stats[StatVIT] != 6 {
		t.Fatalf("VIT=%d, want 6", p.Stats[StatVIT])
	}
	if p.Level != 2 {
		t.Fatalf("level=%d, want 2 at 120 xp", p.Level)
	}

	// Every check with unfinished dailies issued penalties (the other two
	// starter dailies were never done), but only one per day.
	penalties, err := svc.QuestRepo().ListByKind(ctx, string(KindPenalty))
	if err != nil {
		t.Fatalf("list penalties: %v", err)
	}
	if len(penalties) != 7 {
		t.Fatalf("penalty count=%d, want 7", len(penalties))
	}
}
