package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitNoBangtag(t *testing.T) {
	row := mustRow(t, "100", "2024-01-15", "plain #rent", "outgoing")

	parts, err := row.Split()
	if err != nil {
		t.Fatalf("Split() failed: %v", err)
	}
	if len(parts) != 1 || !parts[0].Value.Equal(row.Value) {
		t.Errorf("Split() = %+v, expected the row unchanged", parts)
	}
}

func TestSplitEven(t *testing.T) {
	row := mustRow(t, "300", "2024-01-15", "prepaid #rent !months:3", "outgoing")

	parts, err := row.Split()
	if err != nil {
		t.Fatalf("Split() failed: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("Split() produced %d parts, expected 3", len(parts))
	}

	wantMonths := []string{"2024-01", "2024-02", "2024-03"}
	for i, part := range parts {
		if got := part.Value.String(); got != "-100" {
			t.Errorf("part %d value = %s, expected -100", i, got)
		}
		if got := part.Month(); got != wantMonths[i] {
			t.Errorf("part %d month = %s, expected %s", i, got, wantMonths[i])
		}
		if part.Direction != Outgoing {
			t.Errorf("part %d direction = %s, expected outgoing", i, part.Direction)
		}
		if part.Comment != row.Comment {
			t.Errorf("part %d comment = %q, expected original comment", i, part.Comment)
		}
	}
}

func TestSplitRemainder(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		months string
		want   []string
	}{
		{"100 into 3, cents to earliest", "100.00", "3", []string{"33.34", "33.33", "33.33"}},
		{"outgoing 100 into 3", "-100.00", "3", []string{"-33.33", "-33.33", "-33.34"}},
		{"two cents spread", "0.05", "3", []string{"0.02", "0.02", "0.01"}},
		{"ten into 4", "10", "4", []string{"2.5", "2.5", "2.5", "2.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direction := "incoming"
			magnitude := tt.value
			if magnitude[0] == '-' {
				direction = "outgoing"
				magnitude = magnitude[1:]
			}
			row := mustRow(t, magnitude, "2024-01-10", "span !months:"+tt.months, direction)

			parts, err := row.Split()
			if err != nil {
				t.Fatalf("Split() failed: %v", err)
			}
			if len(parts) != len(tt.want) {
				t.Fatalf("Split() produced %d parts, expected %d", len(parts), len(tt.want))
			}

			sum := decimal.Zero
			for i, part := range parts {
				if got := part.Value.String(); got != tt.want[i] {
					t.Errorf("part %d = %s, expected %s", i, got, tt.want[i])
				}
				sum = sum.Add(part.Value)
			}
			if !sum.Equal(row.Value) {
				t.Errorf("parts sum to %s, expected exactly %s", sum, row.Value)
			}
		})
	}
}

func TestSplitSumIsExact(t *testing.T) {
	// Awkward magnitudes must still sum back exactly.
	values := []string{"0.01", "0.10", "1", "7.77", "99.99", "100.00", "1234.56"}
	counts := []string{"2", "3", "5", "7", "12"}

	for _, value := range values {
		for _, count := range counts {
			row := mustRow(t, value, "2024-03-05", "span !months:"+count, "outgoing")

			parts, err := row.Split()
			if err != nil {
				t.Fatalf("Split(%s/%s) failed: %v", value, count, err)
			}

			sum := decimal.Zero
			for _, part := range parts {
				sum = sum.Add(part.Value)
			}
			if !sum.Equal(row.Value) {
				t.Errorf("Split(%s/%s) parts sum to %s, expected %s", value, count, sum, row.Value)
			}
		}
	}
}

func TestSplitInvalid(t *testing.T) {
	tests := []struct {
		name    string
		comment string
	}{
		{"non-numeric count", "span !months:lots"},
		{"zero count", "span !months:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := mustRow(t, "10", "2024-01-10", tt.comment, "outgoing")
			if _, err := row.Split(); err == nil {
				t.Error("Split() expected error")
			}
		})
	}
}

func TestSplitDayClamping(t *testing.T) {
	row := mustRow(t, "90", "2024-01-31", "span !months:3", "outgoing")

	parts, err := row.Split()
	if err != nil {
		t.Fatalf("Split() failed: %v", err)
	}

	wantDates := []string{"2024-01-31", "2024-02-29", "2024-03-31"}
	for i, part := range parts {
		if got := part.Date.Format(DateFormat); got != wantDates[i] {
			t.Errorf("part %d date = %s, expected %s", i, got, wantDates[i])
		}
	}
}
