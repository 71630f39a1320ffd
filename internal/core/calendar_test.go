package core

import (
	"errors"
	"testing"
)

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int
		leap bool
	}{
		{2024, true},
		{2023, false},
		{2000, true},
		{1900, false},
		{2100, false},
		{2400, true},
		{1996, true},
	}
	for _, tc := range cases {
		if got := IsLeapYear(tc.year); got != tc.leap {
			t.Fatalf("IsLeapYear(%d) = %v, want %v", tc.year, got, tc.leap)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month int
		days        int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{1900, 2, 28},
		{2000, 2, 29},
		{2023, 2, 28},
		{2024, 3, 31},
		{2024, 4, 30},
		{2024, 5, 31},
		{2024, 6, 30},
		{2024, 7, 31},
		{2024, 8, 31},
		{2024, 9, 30},
		{2024, 10, 31},
		{2024, 11, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		got, err := DaysInMonth(tc.year, tc.month)
		if err != nil {
			t.Fatalf("DaysInMonth(%d, %d) unexpected error: %v", tc.year, tc.month, err)
		}
		if got != tc.days {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.days)
		}
	}
}

func TestDaysInMonthFebruaryFollowsLeapRule(t *testing.T) {
	for year := 1600; year <= 2400; year++ {
		got, err := DaysInMonth(year, 2)
		if err != nil {
			t.Fatalf("year %d: %v", year, err)
		}
		want := 28
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			want = 29
		}
		if got != want {
			t.Fatalf("DaysInMonth(%d, 2) = %d, want %d", year, got, want)
		}
	}
}

func TestDaysInMonthRejectsOutOfRange(t *testing.T) {
	for _, m := range []int{-1, 0, 13, 99} {
		if _, err := DaysInMonth(2024, m); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("month %d: expected ErrInvalidMonth, got %v", m, err)
		}
	}
}
