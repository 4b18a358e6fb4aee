package taxonomy

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateBasic(t *testing.T) {
	got, err := Generate("DIS", "US", "META", "Moana Launch", 2026)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if got != "DIS_US_META_2026_MoanaLaunch" {
		t.Fatalf("unexpected taxonomy: %s", got)
	}
}

func TestGenerateStripsPunctuation(t *testing.T) {
	got, err := Generate("DIS", "US", "META", "Star-Wars: The Force!", 2026)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if got != "DIS_US_META_2026_StarWarsTheForce" {
		t.Fatalf("unexpected taxonomy: %s", got)
	}
}

func TestGenerateUppercasesCodes(t *testing.T) {
	got, err := Generate("dis", "us", "meta", "Test", 2026)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if got != "DIS_US_META_2026_Test" {
		t.Fatalf("unexpected taxonomy: %s", got)
	}
}

func TestGenerateEmptySanitizedName(t *testing.T) {
	_, err := Generate("DIS", "US", "META", "!!!", 2026)
	var invalid InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if invalid.Field != "campaign_name" {
		t.Fatalf("expected campaign_name field, got %s", invalid.Field)
	}
}

func TestGenerateInvalidCodes(t *testing.T) {
	cases := []struct {
		name   string
		brand  string
		market string
		field  string
	}{
		{"brand with dash", "DIS-X", "US", "brand_code"},
		{"brand with space", "D IS", "US", "brand_code"},
		{"market with dot", "DIS", "U.S", "market_code"},
		{"empty market", "DIS", "", "market_code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.brand, tc.market, "META", "Test", 2026)
			var invalid InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected invalid input error, got %v", err)
			}
			if invalid.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, invalid.Field)
			}
			if !strings.Contains(invalid.Error(), tc.field) {
				t.Fatalf("error should name the field: %v", invalid)
			}
		})
	}
}

func TestGenerateDefaultsYear(t *testing.T) {
	got, err := Generate("DIS", "US", "MULTI", "Evergreen", 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !Validate(got) {
		t.Fatalf("generated name should validate: %s", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"DIS_US_META_2026_MoanaLaunch", true},
		{"DIS_US_META_2026_Test_Campaign", true},
		{"dis_us_meta_2026_test", false},
		{"DIS_US_META_26_Test", false},
		{"DIS_US_2026_Test", false},
		{"", false},
		{"DIS_US_META_2026_", false},
	}
	for _, tc := range cases {
		if got := Validate(tc.value); got != tc.want {
			t.Fatalf("Validate(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestGenerateRoundTripsThroughValidate(t *testing.T) {
	names := []string{"Moana Launch", "Star-Wars: The Force!", "q2 push", "Été 2026", "x"}
	for _, name := range names {
		got, err := Generate("DIS", "US", "TIKTOK", name, 2026)
		if err != nil {
			t.Fatalf("generate %q failed: %v", name, err)
		}
		if !Validate(got) {
			t.Fatalf("generated name %q should validate", got)
		}
	}
}
