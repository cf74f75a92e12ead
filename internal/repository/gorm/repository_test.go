package gormrepository

import (
	"testing"

	"gorm.io/datatypes"

	"fundboard/internal/repository"
)

func TestPayoutFromUpsales(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"upgraded", `[{"title":"Payout 95%","value":true}]`, "0.95"},
		{"upgraded false value still counts", `[{"title":"Payout 95%","value":false}]`, "0.95"},
		{"null title", `[{"title":null,"value":true}]`, "0.85"},
		{"null value", `[{"title":"Payout 95%","value":null}]`, "0.85"},
		{"all null entries", `[{"title":null,"value":null},{"title":null,"value":null}]`, "0.85"},
		{"mixed entries", `[{"title":null,"value":null},{"title":"Payout 95%","value":true}]`, "0.95"},
		{"empty array", `[]`, "0.85"},
		{"invalid json", `{"not":"an array"`, "0.85"},
		{"empty payload", ``, "0.85"},
	}
	for _, tc := range cases {
		got := payoutFromUpsales(datatypes.JSON(tc.raw))
		if got.String() != tc.want {
			t.Fatalf("%s: payoutFromUpsales(%q) = %s, want %s", tc.name, tc.raw, got, tc.want)
		}
	}
}

func TestPayoutFractions(t *testing.T) {
	if repository.DefaultPayoutFraction.String() != "0.85" {
		t.Fatalf("default fraction = %s", repository.DefaultPayoutFraction)
	}
	if repository.UpsellPayoutFraction.String() != "0.95" {
		t.Fatalf("upsell fraction = %s", repository.UpsellPayoutFraction)
	}
}
