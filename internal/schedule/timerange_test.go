package schedule

import (
	"errors"
	"testing"
	"time"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	r, err := NewTimeRange(parseTime(t, start), parseTime(t, end))
	if err != nil {
		t.Fatalf("NewTimeRange(%s, %s): %v", start, end, err)
	}
	return r
}

func parseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parsing %s: %v", s, err)
	}
	return ts
}

func TestNewTimeRange(t *testing.T) {
	start := parseTime(t, "2026-02-06T18:09:00Z")

	tests := []struct {
		name    string
		end     time.Time
		wantErr error
	}{
		{"valid", start.Add(time.Hour), nil},
		{"end equals start", start, ErrInvalidRange},
		{"end before start", start.Add(-time.Minute), ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeRange(start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTimeRange() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeRangeContains(t *testing.T) {
	r := mustRange(t, "2026-02-06T10:00:00Z", "2026-02-06T12:00:00Z")

	tests := []struct {
		name string
		at   string
		want bool
	}{
		{"before start", "2026-02-06T09:59:59Z", false},
		{"at start", "2026-02-06T10:00:00Z", true},
		{"inside", "2026-02-06T11:00:00Z", true},
		{"at end", "2026-02-06T12:00:00Z", true},
		{"after end", "2026-02-06T12:00:01Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(parseTime(t, tt.at)); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestTimeRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "disjoint",
			a:    mustRange(t, "2026-02-06T10:00:00Z", "2026-02-06T12:00:00Z"),
			b:    mustRange(t, "2026-02-06T13:00:00Z", "2026-02-06T14:00:00Z"),
			want: false,
		},
		{
			name: "partial overlap",
			a:    mustRange(t, "2026-02-06T10:00:00Z", "2026-02-06T12:00:00Z"),
			b:    mustRange(t, "2026-02-06T11:00:00Z", "2026-02-06T13:00:00Z"),
			want: true,
		},
		{
			name: "touching boundaries count",
			a:    mustRange(t, "2026-02-06T10:00:00Z", "2026-02-06T12:00:00Z"),
			b:    mustRange(t, "2026-02-06T12:00:00Z", "2026-02-06T14:00:00Z"),
			want: true,
		},
		{
			name: "contained",
			a:    mustRange(t, "2026-02-06T10:00:00Z", "2026-02-06T14:00:00Z"),
			b:    mustRange(t, "2026-02-06T11:00:00Z", "2026-02-06T12:00:00Z"),
			want: true,
		},
		{
			name: "overnight booking against next morning",
			a:    mustRange(t, "2026-02-06T18:09:00Z", "2026-02-07T19:09:00Z"),
			b:    mustRange(t, "2026-02-07T00:00:00Z", "2026-02-07T12:00:00Z"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeRangeHours(t *testing.T) {
	r := mustRange(t, "2026-02-06T10:00:00Z", "2026-02-06T11:30:00Z")
	if got := r.Hours(); got != 1.5 {
		t.Errorf("Hours() = %v, want 1.5", got)
	}
}
