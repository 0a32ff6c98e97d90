package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lifequest/internal/clock"
	"lifequest/internal/storage"
)

// windowStart returns the inclusive lower bound of a window, aligned to day
// boundaries so that summary filtering and history bucketing see the same
// entry set. The all-time window has no lower bound.
func windowStart(w Window, now time.Time) (time.Time, bool) {
	switch w {
	case WindowWeekly:
		return clock.StartOfDay(now).AddDate(0, 0, -6), true
	case WindowMonthly:
		return clock.StartOfDay(now).AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

func (s *Service) entriesInWindow(ctx context.Context, w Window) ([]storage.Entry, error) {
	if !w.IsValid() {
		return nil, fmt.Errorf("invalid window: %q", w)
	}
	start, bounded := windowStart(w, s.clk.Now())
	if !bounded {
		return s.entries.ListAll(ctx)
	}
	return s.entries.ListSince(ctx, start)
}

// Summary recomputes the windowed totals on every call; nothing here is
// persisted. Passive income and artifact value are current snapshots and
// ignore the window.
func (s *Service) Summary(ctx context.Context, w Window) (*Summary, error) {
	entries, err := s.entriesInWindow(ctx, w)
	if err != nil {
		return nil, err
	}

	var sum Summary
	for _, e := range entries {
		switch EntryKind(e.Kind) {
		case KindIncome:
			sum.TotalIncome += e.Amount
		case KindExpense:
			sum.TotalExpense += e.Amount
		}
	}
	sum.NetWorth = sum.TotalIncome - sum.TotalExpense

	if sum.TotalPassiveIncome, err = s.buffs.SumActive(ctx); err != nil {
		return nil, err
	}
	if sum.TotalArtifactValue, err = s.artifacts.SumValue(ctx); err != nil {
		return nil, err
	}
	return &sum, nil
}

// HistorySeries buckets the windowed entries for charting: 7 day buckets for
// the weekly window, 5 seven-day buckets for the monthly window, 12 month
// buckets for all-time. Bucket boundaries are consecutive and each entry
// lands in exactly one bucket; entries outside the labeled range are absorbed
// by the edge buckets so the series always sums to the Summary totals.
func (s *Service) HistorySeries(ctx context.Context, w Window) ([]HistoryBucket, error) {
	entries, err := s.entriesInWindow(ctx, w)
	if err != nil {
		return nil, err
	}

	buckets := makeBuckets(w, s.clk.Now())
	for _, e := range entries {
		i := bucketIndex(buckets, e.Date)
		switch EntryKind(e.Kind) {
		case KindIncome:
			buckets[i].Income += e.Amount
		case KindExpense:
			buckets[i].Expense += e.Amount
		}
	}
	for i := range buckets {
		buckets[i].Net = buckets[i].Income - buckets[i].Expense
	}
	return buckets, nil
}

func makeBuckets(w Window, now time.Time) []HistoryBucket {
	switch w {
	case WindowWeekly:
		start := clock.StartOfDay(now).AddDate(0, 0, -6)
		out := make([]HistoryBucket, 7)
		for i := range out {
			s := start.AddDate(0, 0, i)
			out[i] = HistoryBucket{
				Label: s.Weekday().String()[:3],
				Start: s,
				End:   s.AddDate(0, 0, 1),
			}
		}
		return out
	case WindowMonthly:
		start := clock.StartOfDay(now).AddDate(0, -1, 0)
		out := make([]HistoryBucket, 5)
		for i := range out {
			s := start.AddDate(0, 0, 7*i)
			out[i] = HistoryBucket{
				Label: fmt.Sprintf("Week %d", i+1),
				Start: s,
				End:   s.AddDate(0, 0, 7),
			}
		}
		return out
	default:
		start := clock.StartOfMonth(now).AddDate(0, -11, 0)
		out := make([]HistoryBucket, 12)
		for i := range out {
			s := start.AddDate(0, i, 0)
			out[i] = HistoryBucket{
				Label: s.Month().String()[:3],
				Start: s,
				End:   s.AddDate(0, 1, 0),
			}
		}
		return out
	}
}

func bucketIndex(buckets []HistoryBucket, date time.Time) int {
	for i, b := range buckets {
		if date.Before(b.End) {
			return i
		}
	}
	return len(buckets) - 1
}

// CategoryBreakdown groups windowed expenses by category, as a share of the
// total. An empty window yields no shares; a zero total never divides.
func (s *Service) CategoryBreakdown(ctx context.Context, w Window) ([]CategoryShare, error) {
	entries, err := s.entriesInWindow(ctx, w)
	if err != nil {
		return nil, err
	}

	byCategory := map[Category]float64{}
	var total float64
	for _, e := range entries {
		if EntryKind(e.Kind) != KindExpense {
			continue
		}
		byCategory[Category(e.Category)] += e.Amount
		total += e.Amount
	}

	out := make([]CategoryShare, 0, len(byCategory))
	for c, amount := range byCategory {
		share := CategoryShare{Category: c, Amount: amount}
		if total > 0 {
			share.Percentage = amount / total * 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
