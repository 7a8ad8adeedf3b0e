package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

// Totals sums GrossAmount and NetAmount over the given rows.
// Sums are exact; no rounding is applied beyond what the input carries.
// An empty slice yields zero for both.
func Totals(activities []models.ActivityRecord) (gross, net decimal.Decimal) {
	gross, net = decimal.Zero, decimal.Zero
	for _, a := range activities {
		gross = gross.Add(a.GrossAmount)
		net = net.Add(a.NetAmount)
	}
	return gross, net
}

// Aggregate packages a person, their attributed rows and status into a
// settlement record. The attributed slice is copied so later changes to the
// caller's slice do not leak into the record.
func Aggregate(p models.PersonRecord, attributed []models.ActivityRecord, status models.MatchStatus) models.SettlementRecord {
	gross, net := Totals(attributed)
	var activities []models.ActivityRecord
	if len(attributed) > 0 {
		activities = make([]models.ActivityRecord, len(attributed))
		copy(activities, attributed)
	}
	return models.SettlementRecord{
		PersonRecord: p,
		Activities:   activities,
		TotalGross:   gross,
		TotalNet:     net,
		Status:       status,
	}
}
