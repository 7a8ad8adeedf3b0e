package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

// Summary holds aggregate figures for one reconciliation pass.
type Summary struct {
	People     int
	ByStatus   map[models.MatchStatus]int
	Attributed int // attributed rows, counted once per person they are attributed to
	Orphans    int

	TotalGross  decimal.Decimal // over all settlement records
	TotalNet    decimal.Decimal
	OrphanGross decimal.Decimal
	OrphanNet   decimal.Decimal

	// NetMismatches counts attributed rows whose supplied net differs from
	// gross minus taxes. Reported only; totals still use the supplied net.
	NetMismatches int
}

// Summarize computes batch figures over settlements and orphans.
//
// Algorithm:
// - count each settlement under its status
// - add its totals to the grand totals
// - add orphan amounts separately, so they never inflate the settled figures
func Summarize(settlements []models.SettlementRecord, orphans []models.ActivityRecord) Summary {
	sum := Summary{
		People:   len(settlements),
		ByStatus: make(map[models.MatchStatus]int, len(models.Statuses)),
		Orphans:  len(orphans),
	}
	for _, status := range models.Statuses {
		sum.ByStatus[status] = 0
	}

	sum.TotalGross, sum.TotalNet = decimal.Zero, decimal.Zero
	for _, s := range settlements {
		sum.ByStatus[s.Status]++
		sum.Attributed += len(s.Activities)
		sum.TotalGross = sum.TotalGross.Add(s.TotalGross)
		sum.TotalNet = sum.TotalNet.Add(s.TotalNet)
		for _, a := range s.Activities {
			if a.NetMismatch() {
				sum.NetMismatches++
			}
		}
	}

	sum.OrphanGross, sum.OrphanNet = Totals(orphans)
	return sum
}
