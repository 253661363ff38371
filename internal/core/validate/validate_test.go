package validate

import (
	"strings"
	"testing"
	"time"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{name: "plain number", raw: "2.5", want: "2.5"},
		{name: "european comma", raw: "2,5", want: "2.5"},
		{name: "integer", raw: " 3 ", want: "3"},
		{name: "zero rejected", raw: "0", wantErr: "greater than 0"},
		{name: "negative rejected", raw: "-1", wantErr: "greater than 0"},
		{name: "garbage rejected", raw: "abc", wantErr: "enter a number"},
		{name: "empty rejected", raw: "", wantErr: "enter a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amount(tt.raw, "Kresse")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Amount(%q) error = %v, want containing %q", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Amount(%q): %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("Amount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAmountRejectsCadenceLabel(t *testing.T) {
	// A cadence label typed into the amount field must produce a hint that
	// names the subscription type, not a bare parse error.
	for _, label := range []string{"Wöchentlich", "Zweiwöchentlich", "Alle 3 Wochen", "Alle 4 Wochen", "Kein Abonnement"} {
		_, err := Amount(label, "Erbsen")
		if err == nil {
			t.Fatalf("Amount(%q) should fail", label)
		}
		msg := err.Error()
		if !strings.Contains(msg, "invalid amount") {
			t.Errorf("Amount(%q) error %q should mention the invalid amount", label, msg)
		}
		if !strings.Contains(msg, "subscription type") {
			t.Errorf("Amount(%q) error %q should mention the subscription type", label, msg)
		}
	}
}

func TestDate(t *testing.T) {
	want := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"06.03.2026", "2026-03-06", " 06.03.2026 "} {
		got, err := Date(raw)
		if err != nil {
			t.Fatalf("Date(%q): %v", raw, err)
		}
		if !got.Equal(want) {
			t.Errorf("Date(%q) = %v, want %v", raw, got, want)
		}
	}

	if _, err := Date("06/03/2026"); err == nil {
		t.Error("Date with slashes should fail")
	}
	if _, err := Date(""); err == nil {
		t.Error("empty date should fail")
	}
}

func TestWindow(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 28)

	if err := Window(from, to); err != nil {
		t.Errorf("ordered window should pass: %v", err)
	}
	if err := Window(from, from); err != nil {
		t.Errorf("single-day window should pass: %v", err)
	}
	if err := Window(to, from); err == nil {
		t.Error("inverted window should fail")
	}
}

func TestErrorsCollect(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Error("empty Errors should yield nil")
	}
	errs.Add("amount", "must be greater than 0")
	errs.Add("delivery_date", "invalid date %q", "x")
	err := errs.Err()
	if err == nil {
		t.Fatal("Err() should be non-nil")
	}
	if !strings.Contains(err.Error(), "amount") || !strings.Contains(err.Error(), "delivery_date") {
		t.Errorf("combined error %q should name both fields", err.Error())
	}
}

func TestPrice(t *testing.T) {
	got, err := Price("4,20")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if got.String() != "4.2" {
		t.Errorf("Price = %s, want 4.2", got)
	}
	if _, err := Price("-1"); err == nil {
		t.Error("negative price should fail")
	}
}
