package models

import (
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid", "2024-03-15", true},
		{"empty", "", false},
		{"free text", "early spring", false},
		{"wrong layout", "03/15/2024", false},
		{"datetime", "2024-03-15T10:00:00Z", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseISODate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseISODate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && FormatISODate(got) != tt.input {
				t.Errorf("round trip = %q, want %q", FormatISODate(got), tt.input)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	start, _ := ParseISODate("2024-02-27")
	if got := FormatISODate(AddDays(start, 3)); got != "2024-03-01" {
		t.Errorf("leap February add = %s, want 2024-03-01", got)
	}
	if got := FormatISODate(AddDays(start, -30)); got != "2024-01-28" {
		t.Errorf("negative add = %s, want 2024-01-28", got)
	}
	noon := time.Date(2024, 2, 27, 12, 30, 0, 0, time.Local)
	if got := AddDays(noon, 1); got.Hour() != 0 {
		t.Errorf("result not midnight-normalized: %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-03-22", "2024-03-23", 1},
		{"2024-03-23", "2024-03-22", -1},
		{"2024-05-01", "2024-05-01", 0},
		{"2024-02-01", "2024-03-01", 29}, // leap year
		{"2024-03-01", "2024-04-01", 31}, // spans a DST transition
	}
	for _, tt := range tests {
		a, _ := ParseISODate(tt.a)
		b, _ := ParseISODate(tt.b)
		if got := DaysBetween(a, b); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWindowMidpoint(t *testing.T) {
	tests := []struct {
		name   string
		window *DateWindow
		want   string
		ok     bool
	}{
		{"spring window", &DateWindow{Start: "2024-03-15", End: "2024-04-01"}, "2024-03-23", true},
		{"single day", &DateWindow{Start: "2024-05-01", End: "2024-05-01"}, "2024-05-01", true},
		{"nil window", nil, "", false},
		{"missing end", &DateWindow{Start: "2024-03-15"}, "", false},
		{"bad start", &DateWindow{Start: "spring", End: "2024-04-01"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WindowMidpoint(tt.window)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && FormatISODate(got) != tt.want {
				t.Errorf("midpoint = %s, want %s", FormatISODate(got), tt.want)
			}
		})
	}
}
