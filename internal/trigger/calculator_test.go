package trigger_test

import (
	"testing"
	"time"

	"github.com/gyeongjo/reminderhub/internal/clock"
	"github.com/gyeongjo/reminderhub/internal/trigger"
)

var defaultOffsets = trigger.Offsets{
	DaysBefore:  []int{3, 1},
	HoursBefore: []int{3},
}

func fixedCalc(now time.Time) *trigger.Calculator {
	return trigger.NewCalculator(defaultOffsets, clock.Fixed{T: now})
}

func TestCalculator_AllOffsetsInFuture(t *testing.T) {
	// Event created well ahead: every configured offset yields a trigger.
	kst := time.FixedZone("KST", 9*3600)
	start := time.Date(2024, 6, 15, 14, 0, 0, 0, kst)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	got := fixedCalc(now).Compute(start)
	if len(got) != 3 {
		t.Fatalf("expected 3 triggers, got %d", len(got))
	}

	want := []trigger.Trigger{
		{Label: "3 days before", FireAt: time.Date(2024, 6, 12, 14, 0, 0, 0, kst)},
		{Label: "1 days before", FireAt: time.Date(2024, 6, 14, 14, 0, 0, 0, kst)},
		{Label: "3 hours before", FireAt: time.Date(2024, 6, 15, 11, 0, 0, 0, kst)},
	}
	for i, w := range want {
		if got[i].Label != w.Label {
			t.Errorf("trigger %d: expected label %q, got %q", i, w.Label, got[i].Label)
		}
		if !got[i].FireAt.Equal(w.FireAt) {
			t.Errorf("trigger %d: expected fire-at %v, got %v", i, w.FireAt, got[i].FireAt)
		}
	}
}

func TestCalculator_PastOffsetsDropped(t *testing.T) {
	start := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected []string
	}{
		{
			"created 12 hours before start",
			start.Add(-12 * time.Hour),
			[]string{"3 hours before"},
		},
		{
			"created 2 days before start",
			start.Add(-48 * time.Hour),
			[]string{"1 days before", "3 hours before"},
		},
		{
			"created 1 hour before start",
			start.Add(-1 * time.Hour),
			nil,
		},
		{
			"event already started",
			start.Add(time.Minute),
			nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := fixedCalc(tc.now).Compute(start)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d triggers, got %d", len(tc.expected), len(got))
			}
			for i, label := range tc.expected {
				if got[i].Label != label {
					t.Errorf("trigger %d: expected %q, got %q", i, label, got[i].Label)
				}
			}
		})
	}
}

func TestCalculator_OffsetExactlyNow(t *testing.T) {
	// A fire-at equal to now is not in the future and must be dropped.
	start := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	now := start.Add(-3 * time.Hour)

	got := fixedCalc(now).Compute(start)
	for _, tr := range got {
		if tr.Label == "3 hours before" {
			t.Fatalf("expected the exactly-now offset to be dropped, got %+v", tr)
		}
	}
}

func TestCalculator_EmptyOffsets(t *testing.T) {
	calc := trigger.NewCalculator(trigger.Offsets{}, clock.Fixed{T: time.Now()})
	if got := calc.Compute(time.Now().Add(240 * time.Hour)); len(got) != 0 {
		t.Fatalf("expected no triggers for empty offsets, got %d", len(got))
	}
}
