package models

import (
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 15, hour, min, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	t.Run("accepts start before end", func(t *testing.T) {
		iv, err := NewInterval(ts(9, 0), ts(9, 30))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !iv.Start.Equal(ts(9, 0)) || !iv.End.Equal(ts(9, 30)) {
			t.Fatalf("unexpected interval %v", iv)
		}
	})

	t.Run("rejects end before start", func(t *testing.T) {
		if _, err := NewInterval(ts(9, 0), ts(8, 30)); err != ErrInvalidInterval {
			t.Fatalf("expected ErrInvalidInterval, got %v", err)
		}
	})

	t.Run("rejects zero-length interval", func(t *testing.T) {
		if _, err := NewInterval(ts(9, 0), ts(9, 0)); err != ErrInvalidInterval {
			t.Fatalf("expected ErrInvalidInterval, got %v", err)
		}
	})
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"partial overlap", Interval{ts(9, 0), ts(9, 30)}, Interval{ts(9, 15), ts(9, 45)}, true},
		{"containment", Interval{ts(9, 0), ts(10, 0)}, Interval{ts(9, 15), ts(9, 45)}, true},
		{"identical", Interval{ts(9, 0), ts(9, 30)}, Interval{ts(9, 0), ts(9, 30)}, true},
		{"touching never overlaps", Interval{ts(9, 0), ts(9, 30)}, Interval{ts(9, 30), ts(10, 0)}, false},
		{"disjoint", Interval{ts(9, 0), ts(9, 30)}, Interval{ts(11, 0), ts(12, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("a.Overlaps(b) = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("b.Overlaps(a) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIntervalOverlapsSelf(t *testing.T) {
	a := Interval{ts(9, 0), ts(9, 30)}
	if !a.Overlaps(a) {
		t.Fatal("non-degenerate interval must overlap itself")
	}
}
