package core

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "plain decimal", in: "12.34", want: 1234},
		{name: "integer", in: "1200", want: 120000},
		{name: "negative", in: "-42.50", want: -4250},
		{name: "explicit plus", in: "+10", want: 1000},
		{name: "dollar sign and thousands", in: "$1,160.78", want: 116078},
		{name: "negative with dollar sign", in: "-$1,160.78", want: -116078},
		{name: "accounting parentheses", in: "(42.50)", want: -4250},
		{name: "rounds third decimal down", in: "12.344", want: 1234},
		{name: "rounds third decimal up", in: "12.346", want: 1235},
		{name: "comma only grouping", in: "2,500", want: 250000},
		{name: "zero", in: "0", want: 0},
		{name: "whitespace", in: "  3.50 ", want: 350},
		{name: "empty", in: "", wantErr: true},
		{name: "letters", in: "abc", wantErr: true},
		{name: "double dot", in: "1.2.3", wantErr: true},
		{name: "bare dot", in: ".", wantErr: true},
		{name: "bare sign", in: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %d, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1234, "$12.34"},
		{-4250, "$42.50"}, // magnitude only, no sign
		{123456, "$1,234.56"},
		{123456789, "$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).FormatUSD(); got != tt.want {
			t.Errorf("FormatUSD(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatSignedUSD(t *testing.T) {
	if got := (Money{Cents: 1050}).FormatSignedUSD(); got != "+$10.50" {
		t.Errorf("positive = %q, want +$10.50", got)
	}
	if got := (Money{Cents: -1050}).FormatSignedUSD(); got != "-$10.50" {
		t.Errorf("negative = %q, want -$10.50", got)
	}
	if got := (Money{Cents: 0}).FormatSignedUSD(); got != "+$0.00" {
		t.Errorf("zero = %q, want +$0.00", got)
	}
}

func TestParseAmountFloat(t *testing.T) {
	tests := []struct {
		in      float64
		want    int64
		wantErr bool
	}{
		{42.50, 4250, false},
		{-42.50, -4250, false},
		{0, 0, false},
		{2500.00, 250000, false},
		{0.01, 1, false},
		{1e18, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmountFloat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmountFloat(%v) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmountFloat(%v) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmountFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
