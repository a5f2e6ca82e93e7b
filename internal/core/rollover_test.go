package core

import "testing"

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		freq Frequency
		want Date
	}{
		{
			name: "weekly adds seven days",
			in:   NewDate(2024, 1, 1),
			freq: Weekly,
			want: NewDate(2024, 1, 8),
		},
		{
			name: "weekly crosses month boundary",
			in:   NewDate(2024, 1, 29),
			freq: Weekly,
			want: NewDate(2024, 2, 5),
		},
		{
			name: "monthly plain",
			in:   NewDate(2024, 3, 15),
			freq: Monthly,
			want: NewDate(2024, 4, 15),
		},
		{
			name: "monthly clamps 31st to 28",
			in:   NewDate(2024, 1, 31),
			freq: Monthly,
			want: NewDate(2024, 2, 28),
		},
		{
			name: "monthly clamps 30th to 28",
			in:   NewDate(2024, 1, 30),
			freq: Monthly,
			want: NewDate(2024, 2, 28),
		},
		{
			name: "monthly rolls year past december",
			in:   NewDate(2024, 12, 10),
			freq: Monthly,
			want: NewDate(2025, 1, 10),
		},
		{
			name: "yearly plain",
			in:   NewDate(2024, 6, 1),
			freq: Yearly,
			want: NewDate(2025, 6, 1),
		},
		{
			// The rule keeps month/day verbatim; 2025-02-29 does not
			// exist and time.Date normalizes it to March 1. Legacy
			// behavior, kept on purpose.
			name: "yearly leap day normalizes",
			in:   NewDate(2024, 2, 29),
			freq: Yearly,
			want: NewDate(2025, 3, 1),
		},
		{
			name: "unknown frequency falls back to monthly",
			in:   NewDate(2024, 1, 31),
			freq: Frequency("fortnightly"),
			want: NewDate(2024, 2, 28),
		},
		{
			name: "empty frequency falls back to monthly",
			in:   NewDate(2024, 5, 3),
			freq: Frequency(""),
			want: NewDate(2024, 6, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.in, tt.freq)
			if !got.Equal(tt.want.Time) {
				t.Errorf("NextDueDate(%s, %s) = %s, want %s", tt.in, tt.freq, got, tt.want)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		in   string
		want Frequency
		ok   bool
	}{
		{"weekly", Weekly, true},
		{"Monthly", Monthly, true},
		{" YEARLY ", Yearly, true},
		{"daily", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFrequency(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
