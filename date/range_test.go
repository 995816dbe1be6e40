package date

import (
	"testing"
	"time"
)

func TestStartOfEndOf(t *testing.T) {
	testCases := []struct {
		name     string
		in       Date
		period   Period
		from, to Date
	}{
		{"daily", New(2025, time.September, 8), Daily, New(2025, time.September, 8), New(2025, time.September, 8)},
		{"a wednesday", New(2025, time.September, 10), Weekly, New(2025, time.September, 8), New(2025, time.September, 14)},
		{"a sunday", New(2025, time.September, 14), Weekly, New(2025, time.September, 8), New(2025, time.September, 14)},
		{"a leap year", New(2024, time.February, 15), Monthly, New(2024, time.February, 1), New(2024, time.February, 29)},
		{"Q2", New(2025, time.May, 20), Quarterly, New(2025, time.April, 1), New(2025, time.June, 30)},
		{"year", New(2025, time.September, 8), Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.StartOf(tc.period); got != tc.from {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.from)
			}
			if got := tc.in.EndOf(tc.period); got != tc.to {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.to)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Period
		wantErr bool
	}{
		{"Daily", "daily", Daily, false},
		{"Weekly", "weekly", Weekly, false},
		{"Monthly", "monthly", Monthly, false},
		{"Quarterly", "quarterly", Quarterly, false},
		{"Yearly", "yearly", Yearly, false},
		{"Unknown", "unknown", Daily, true},
		{"Daily", "day", Daily, false},
		{"Weekly", "week", Weekly, false},
		{"Monthly", "month", Monthly, false},
		{"Quarterly", "quarter", Quarterly, false},
		{"Yearly", "year", Yearly, false},
		{"Initial", "Q", Quarterly, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRange_ContainsOpen(t *testing.T) {
	r := Range{From: New(2025, time.January, 1), To: New(2025, time.June, 30)}
	testCases := []struct {
		on   Date
		want bool
	}{
		{New(2025, time.January, 1), false},
		{New(2025, time.January, 2), true},
		{New(2025, time.June, 30), true},
		{New(2025, time.July, 1), false},
	}
	for _, tc := range testCases {
		if got := r.ContainsOpen(tc.on); got != tc.want {
			t.Errorf("ContainsOpen(%v) = %v, want %v", tc.on, got, tc.want)
		}
	}
}

func TestRange_Ends(t *testing.T) {
	testCases := []struct {
		name   string
		in     Range
		period Period
		want   []Date
	}{
		{
			name:   "months clamped to range end",
			in:     Range{From: New(2025, time.January, 15), To: New(2025, time.March, 10)},
			period: Monthly,
			want:   []Date{New(2025, time.January, 31), New(2025, time.February, 28), New(2025, time.March, 10)},
		},
		{
			name:   "range ending on a period end",
			in:     Range{From: New(2025, time.January, 1), To: New(2025, time.June, 30)},
			period: Quarterly,
			want:   []Date{New(2025, time.March, 31), New(2025, time.June, 30)},
		},
		{
			name:   "single day",
			in:     Range{From: New(2025, time.May, 5), To: New(2025, time.May, 5)},
			period: Yearly,
			want:   []Date{New(2025, time.May, 5)},
		},
		{
			name:   "inverted range",
			in:     Range{From: New(2025, time.May, 5), To: New(2025, time.May, 1)},
			period: Daily,
			want:   nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []Date
			for on := range tc.in.Ends(tc.period) {
				got = append(got, on)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Ends() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Ends()[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
