package validate_test

import (
	"testing"
	"time"

	"sweetnirwana/internal/validate"
)

func TestQty(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{" 3 ", 3, true},
		{"99", 99, true},
		{"0", 0, false},
		{"-2", 0, false},
		{"100", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := validate.Qty(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("Qty(%q) = %d,%v; want %d,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCardNumber(t *testing.T) {
	if _, ok := validate.CardNumber("4242 4242 4242 4242"); !ok {
		t.Error("spaced card number should pass")
	}
	if _, ok := validate.CardNumber("4242-4242-4242-4242"); ok {
		t.Error("dashes are not accepted")
	}
	if _, ok := validate.CardNumber("123456789012"); ok {
		t.Error("12 digits is too short")
	}
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !validate.Expiry("03/26", now) {
		t.Error("current month is still valid")
	}
	if !validate.Expiry("12/27", now) {
		t.Error("future expiry should pass")
	}
	if validate.Expiry("02/26", now) {
		t.Error("past month should fail")
	}
	for _, bad := range []string{"13/26", "3/26", "03-26", "0326", ""} {
		if validate.Expiry(bad, now) {
			t.Errorf("Expiry(%q) should fail", bad)
		}
	}
}

func TestCVV(t *testing.T) {
	for _, good := range []string{"123", "1234"} {
		if !validate.CVV(good) {
			t.Errorf("CVV(%q) should pass", good)
		}
	}
	for _, bad := range []string{"12", "12345", "12a", ""} {
		if validate.CVV(bad) {
			t.Errorf("CVV(%q) should fail", bad)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := validate.ID("kaju-katli"); !ok {
		t.Error("kebab ids should pass")
	}
	for _, bad := range []string{"", "a b", "x/../y", "<script>"} {
		if _, ok := validate.ID(bad); ok {
			t.Errorf("ID(%q) should fail", bad)
		}
	}
}

func TestZIP(t *testing.T) {
	if _, ok := validate.ZIP("20742"); !ok {
		t.Error("5-digit zip should pass")
	}
	for _, bad := range []string{"2074", "207422", "2074a", ""} {
		if _, ok := validate.ZIP(bad); ok {
			t.Errorf("ZIP(%q) should fail", bad)
		}
	}
}
