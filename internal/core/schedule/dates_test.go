package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProductionDate(t *testing.T) {
	// 2026-03-06 is a Friday.
	delivery := date(2026, 3, 6)

	tests := []struct {
		name        string
		delivery    time.Time
		totalDays   int
		avoidSunday bool
		want        time.Time
	}{
		{
			name:        "plain subtraction",
			delivery:    delivery,
			totalDays:   6,
			avoidSunday: true,
			want:        date(2026, 2, 28), // Saturday
		},
		{
			name:        "sunday avoided shifts to saturday",
			delivery:    delivery,
			totalDays:   5, // lands on Sunday 2026-03-01
			avoidSunday: true,
			want:        date(2026, 2, 28),
		},
		{
			name:        "sunday allowed stays on sunday",
			delivery:    delivery,
			totalDays:   5,
			avoidSunday: false,
			want:        date(2026, 3, 1),
		},
		{
			name:        "zero growth produces on delivery day",
			delivery:    delivery,
			totalDays:   0,
			avoidSunday: true,
			want:        delivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProductionDate(tt.delivery, tt.totalDays, tt.avoidSunday)
			if !got.Equal(tt.want) {
				t.Errorf("ProductionDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransferDate(t *testing.T) {
	production := date(2026, 2, 28)
	got := TransferDate(production, 3)
	want := date(2026, 3, 3)
	if !got.Equal(want) {
		t.Errorf("TransferDate() = %v, want %v", got, want)
	}
}

func TestOrderProductionDate(t *testing.T) {
	delivery := date(2026, 3, 6)

	// The longest-growing item drives the order-wide date.
	got := OrderProductionDate(delivery, []int{6, 10, 3}, true)
	want := ProductionDate(delivery, 10, true)
	if !got.Equal(want) {
		t.Errorf("OrderProductionDate() = %v, want %v", got, want)
	}

	// Single item degenerates to the per-item rule.
	got = OrderProductionDate(delivery, []int{4}, true)
	want = ProductionDate(delivery, 4, true)
	if !got.Equal(want) {
		t.Errorf("OrderProductionDate() single = %v, want %v", got, want)
	}
}

func TestOccurrences(t *testing.T) {
	seed := date(2026, 3, 2) // Monday

	tests := []struct {
		name    string
		cadence Cadence
		toDate  time.Time
		want    []time.Time
	}{
		{
			name:    "weekly over four weeks",
			cadence: CadenceWeekly,
			toDate:  seed.AddDate(0, 0, 28),
			want: []time.Time{
				seed.AddDate(0, 0, 7),
				seed.AddDate(0, 0, 14),
				seed.AddDate(0, 0, 21),
				seed.AddDate(0, 0, 28),
			},
		},
		{
			name:    "biweekly over four weeks",
			cadence: CadenceBiweekly,
			toDate:  seed.AddDate(0, 0, 28),
			want: []time.Time{
				seed.AddDate(0, 0, 14),
				seed.AddDate(0, 0, 28),
			},
		},
		{
			name:    "inclusive upper bound",
			cadence: CadenceFourWeekly,
			toDate:  seed.AddDate(0, 0, 28),
			want:    []time.Time{seed.AddDate(0, 0, 28)},
		},
		{
			name:    "window shorter than one interval",
			cadence: CadenceWeekly,
			toDate:  seed.AddDate(0, 0, 6),
			want:    nil,
		},
		{
			name:    "no cadence yields nothing",
			cadence: CadenceNone,
			toDate:  seed.AddDate(0, 0, 28),
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Occurrences(seed, tt.toDate, tt.cadence)
			if len(got) != len(tt.want) {
				t.Fatalf("Occurrences() returned %d dates, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("Occurrences()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOccurrencesCountProperty(t *testing.T) {
	// For cadence C and window end toDate, the number of occurrences is
	// floor((toDate-seed)/C), each exactly C days apart, none past toDate.
	seed := date(2026, 1, 5)
	for _, c := range []Cadence{CadenceWeekly, CadenceBiweekly, CadenceThreeWeekly, CadenceFourWeekly} {
		for span := 0; span <= 90; span += 13 {
			toDate := seed.AddDate(0, 0, span)
			got := Occurrences(seed, toDate, c)
			wantCount := span / c.Interval()
			if len(got) != wantCount {
				t.Errorf("cadence %d span %d: got %d occurrences, want %d", c, span, len(got), wantCount)
			}
			prev := seed
			for _, d := range got {
				if gap := int(d.Sub(prev).Hours() / 24); gap != c.Interval() {
					t.Errorf("cadence %d: gap %d days, want %d", c, gap, c.Interval())
				}
				if d.After(toDate) {
					t.Errorf("cadence %d: occurrence %v exceeds window end %v", c, d, toDate)
				}
				prev = d
			}
		}
	}
}

func TestFitsCadence(t *testing.T) {
	anchor := date(2026, 3, 2)

	tests := []struct {
		name      string
		candidate time.Time
		cadence   Cadence
		want      bool
	}{
		{"anchor always fits", anchor, CadenceNone, true},
		{"one interval later", anchor.AddDate(0, 0, 7), CadenceWeekly, true},
		{"one interval earlier", anchor.AddDate(0, 0, -14), CadenceBiweekly, true},
		{"off pattern", anchor.AddDate(0, 0, 10), CadenceWeekly, false},
		{"weekly date against biweekly", anchor.AddDate(0, 0, 7), CadenceBiweekly, false},
		{"no cadence rejects everything else", anchor.AddDate(0, 0, 7), CadenceNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitsCadence(anchor, tt.candidate, tt.cadence); got != tt.want {
				t.Errorf("FitsCadence(%v, %v, %d) = %v, want %v", anchor, tt.candidate, tt.cadence, got, tt.want)
			}
		})
	}
}

func TestAllowSunday(t *testing.T) {
	sunday := date(2026, 3, 1)
	monday := date(2026, 3, 2)

	if AllowSunday([]time.Time{monday, sunday}) != true {
		t.Error("AllowSunday should be true when any production date falls on Sunday")
	}
	if AllowSunday([]time.Time{monday}) != false {
		t.Error("AllowSunday should be false without a Sunday production date")
	}
	if AllowSunday(nil) != false {
		t.Error("AllowSunday of empty input should be false")
	}
}

func TestCadence(t *testing.T) {
	if _, err := ParseCadence(5); err == nil {
		t.Error("ParseCadence(5) should fail")
	}
	c, err := ParseCadence(2)
	if err != nil {
		t.Fatalf("ParseCadence(2): %v", err)
	}
	if c != CadenceBiweekly || c.Interval() != 14 {
		t.Errorf("ParseCadence(2) = %d with interval %d", c, c.Interval())
	}
	if CadenceWeekly.Label() != "Wöchentlich" {
		t.Errorf("unexpected weekly label %q", CadenceWeekly.Label())
	}
	if len(Labels()) != 5 {
		t.Errorf("Labels() returned %d entries, want 5", len(Labels()))
	}
}
