package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"1200", 120000, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1.2a", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false}, // overflow
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{450, "4.50"},
		{120000, "1200.00"},
		{0, "0.00"},
		{-250, "-2.50"},
		{5, "0.05"},
		{9550, "95.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	sum := Money{Cents: 100}.Add(Money{Cents: 23})
	if sum.Cents != 123 {
		t.Fatalf("expected 123, got %d", sum.Cents)
	}
	diff := Money{Cents: 200}.Sub(Money{Cents: 450})
	if diff.Cents != -250 {
		t.Fatalf("expected -250, got %d", diff.Cents)
	}
	if !diff.IsNegative() {
		t.Fatalf("expected negative")
	}
	if sum.IsNegative() {
		t.Fatalf("expected non-negative")
	}
}
