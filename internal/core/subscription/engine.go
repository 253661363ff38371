// Package subscription contains the pure planning logic for recurring order
// series: expanding a seed order into future drafts, diffing a persisted
// series against its target schedule after an edit, and the detach rule.
// No I/O - persistence orchestration lives in the application layer.
package subscription

import (
	"sort"
	"time"

	"github.com/example/microfarm/internal/core/schedule"
)

// Seed describes the order a series is expanded from, after any edit has
// been applied to it.
type Seed struct {
	DeliveryDate time.Time
	FromDate     time.Time
	ToDate       time.Time
	Cadence      schedule.Cadence
	// AvoidSunday is the sticky per-series Sunday policy, derived once from
	// the seed's stored production dates (schedule.AllowSunday).
	AvoidSunday bool
}

// LineSpec carries the item growth parameters needed to derive dates for a
// draft's line items.
type LineSpec struct {
	ItemName        string
	GerminationDays int
	TotalDays       int
}

// DraftLine is a planned line item with its derived dates.
type DraftLine struct {
	ItemName       string
	ProductionDate time.Time
	TransferDate   time.Time
}

// Draft is a planned future order instance. The caller persists it, copying
// the seed's item/amount pairs onto it.
type Draft struct {
	DeliveryDate   time.Time
	ProductionDate time.Time
	Lines          []DraftLine
}

// Expand materializes the future instances of a subscription seed, one per
// occurrence date, each carrying freshly derived per-item dates under the
// seed's Sunday policy. An empty result means the cadence or window yields
// no future instances.
func Expand(seed Seed, lines []LineSpec) []Draft {
	dates := schedule.Occurrences(seed.DeliveryDate, seed.ToDate, seed.Cadence)
	drafts := make([]Draft, 0, len(dates))
	for _, d := range dates {
		drafts = append(drafts, buildDraft(d, lines, seed.AvoidSunday))
	}
	return drafts
}

func buildDraft(delivery time.Time, lines []LineSpec, avoidSunday bool) Draft {
	draft := Draft{DeliveryDate: delivery}
	totals := make([]int, 0, len(lines))
	for _, l := range lines {
		prod := schedule.ProductionDate(delivery, l.TotalDays, avoidSunday)
		draft.Lines = append(draft.Lines, DraftLine{
			ItemName:       l.ItemName,
			ProductionDate: prod,
			TransferDate:   schedule.TransferDate(prod, l.GerminationDays),
		})
		totals = append(totals, l.TotalDays)
	}
	if len(totals) > 0 {
		draft.ProductionDate = schedule.OrderProductionDate(delivery, totals, avoidSunday)
	} else {
		draft.ProductionDate = schedule.DateOnly(delivery)
	}
	return draft
}

// LineKey identifies a line item for staleness comparison. Amount is the
// canonical decimal string so 2.50 and 2.5 compare equal when normalized by
// the caller.
type LineKey struct {
	ItemName string
	Amount   string
}

// Member is a persisted order of the series under resync.
type Member struct {
	Ref          string
	DeliveryDate time.Time
	FromDate     time.Time
	ToDate       time.Time
	Cadence      schedule.Cadence
	Lines        []LineKey
}

// Result is the outcome of a resync: refs of stale members to delete and
// drafts to create. Applying a Result and resyncing again yields an empty
// Result on both sides.
type Result struct {
	DeleteRefs []string
	Create     []Draft
}

// Resync diffs the persisted series members against the schedule regenerated
// from the edited seed, anchored at editPoint (the edited order's pre-edit
// delivery date). Members at or before editPoint are never touched, nor is
// the edited order itself. A future member survives only if it already
// matches the target schedule exactly: occurrence date, cadence, window and
// line-item set. Everything else is stale and replaced.
func Resync(seed Seed, lines []LineSpec, target []LineKey, members []Member, editedRef string, editPoint time.Time) Result {
	anchor := schedule.DateOnly(editPoint)

	regen := make(map[time.Time]Draft)
	var regenDates []time.Time
	for _, d := range Expand(seed, lines) {
		if d.DeliveryDate.After(anchor) {
			regen[d.DeliveryDate] = d
			regenDates = append(regenDates, d.DeliveryDate)
		}
	}

	var res Result
	occupied := make(map[time.Time]bool)
	for _, m := range members {
		if m.Ref == editedRef || !schedule.DateOnly(m.DeliveryDate).After(anchor) {
			continue
		}
		if matchesTarget(m, seed, target, regen) {
			occupied[schedule.DateOnly(m.DeliveryDate)] = true
			continue
		}
		res.DeleteRefs = append(res.DeleteRefs, m.Ref)
	}

	for _, d := range regenDates {
		if !occupied[d] {
			res.Create = append(res.Create, regen[d])
		}
	}
	return res
}

func matchesTarget(m Member, seed Seed, target []LineKey, regen map[time.Time]Draft) bool {
	if _, ok := regen[schedule.DateOnly(m.DeliveryDate)]; !ok {
		return false
	}
	if m.Cadence != seed.Cadence {
		return false
	}
	if !schedule.DateOnly(m.FromDate).Equal(schedule.DateOnly(seed.FromDate)) ||
		!schedule.DateOnly(m.ToDate).Equal(schedule.DateOnly(seed.ToDate)) {
		return false
	}
	return sameLines(m.Lines, target)
}

func sameLines(a, b []LineKey) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]LineKey(nil), a...)
	bs := append([]LineKey(nil), b...)
	less := func(s []LineKey) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].ItemName != s[j].ItemName {
				return s[i].ItemName < s[j].ItemName
			}
			return s[i].Amount < s[j].Amount
		}
	}
	sort.Slice(as, less(as))
	sort.Slice(bs, less(bs))
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// ShouldDetach reports whether a single-occurrence edit takes the order off
// its series: changing the cadence code, or moving the delivery date off the
// recurrence pattern. Detached orders have their subscription cleared rather
// than being left inconsistent with their siblings.
func ShouldDetach(originalDelivery, newDelivery time.Time, originalCadence, newCadence schedule.Cadence) bool {
	if originalCadence == schedule.CadenceNone {
		return false
	}
	if newCadence != originalCadence {
		return true
	}
	return !schedule.FitsCadence(originalDelivery, newDelivery, originalCadence)
}
