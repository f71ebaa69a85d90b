package datemath_test

import (
	"testing"
	"time"

	"task-intent/pkg/datemath"
)

func TestBusiness(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")

	tests := []struct {
		name  string
		token string
		base  time.Time
		want  time.Time
	}{
		{
			name:  "eod",
			token: "eod",
			base:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "cob uppercase",
			token: "COB",
			base:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "eow from wednesday",
			token: "eow",
			base:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 5, 3, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "eow on friday stays today",
			token: "eow",
			base:  time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 5, 3, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "eow from saturday",
			token: "eow",
			base:  time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 5, 10, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "eom leap february",
			token: "eom",
			base:  time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 2, 29, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "eom december rolls year",
			token: "eom",
			base:  time.Date(2024, 12, 5, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 12, 31, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Business(tt.token, tt.base)
			if err != nil {
				t.Fatalf("Business() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Business() got = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := parser.Business("eoy", time.Now()); err == nil {
		t.Error("expected error for unknown token")
	}
}

func TestQuantizeUp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "rounds up",
			in:   time.Date(2024, 5, 1, 10, 7, 30, 0, time.UTC),
			want: time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC),
		},
		{
			name: "one second past boundary",
			in:   time.Date(2024, 5, 1, 10, 15, 1, 0, time.UTC),
			want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "exact boundary unchanged",
			in:   time.Date(2024, 5, 1, 10, 45, 0, 0, time.UTC),
			want: time.Date(2024, 5, 1, 10, 45, 0, 0, time.UTC),
		},
		{
			name: "crosses hour",
			in:   time.Date(2024, 5, 1, 10, 52, 0, 0, time.UTC),
			want: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := datemath.QuantizeUp(tt.in, 15*time.Minute)
			if !got.Equal(tt.want) {
				t.Errorf("QuantizeUp() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve24h(t *testing.T) {
	pm, am := true, false

	tests := []struct {
		hour int
		pm   *bool
		want int
	}{
		{hour: 12, pm: &pm, want: 12},
		{hour: 12, pm: &am, want: 0},
		{hour: 3, pm: &pm, want: 15},
		{hour: 9, pm: &am, want: 9},
		{hour: 18, pm: nil, want: 18},
	}

	for _, tt := range tests {
		if got := datemath.Resolve24h(tt.hour, tt.pm); got != tt.want {
			t.Errorf("Resolve24h(%d) = %d, want %d", tt.hour, got, tt.want)
		}
	}
}
