package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

func TestSummarize(t *testing.T) {
	people := []models.PersonRecord{
		kim,
		{Key: "lee", Name: "Lee", PhoneNumber: "010-5555-6666"},
		{Key: "park", Name: "Park"},
	}
	activities := []models.ActivityRecord{
		{Name: "Kim", ResidentID: "900101-1234567", GrossAmount: amount(100000), BusinessTax: amount(3000), LocalTax: amount(300), NetAmount: amount(96700)},
		{Name: "Lee", GrossAmount: amount(50000), NetAmount: amount(50000)},
		{Name: "Choi", GrossAmount: amount(20000), NetAmount: amount(19000)},
	}

	settlements := MatchAll(people, activities)
	orphans := Orphans(people, activities)
	sum := Summarize(settlements, orphans)

	if sum.People != 3 {
		t.Errorf("People = %d, want 3", sum.People)
	}
	if sum.ByStatus[models.StatusMatched] != 1 || sum.ByStatus[models.StatusPartial] != 1 || sum.ByStatus[models.StatusUnmatched] != 1 {
		t.Errorf("ByStatus = %v, want one of each", sum.ByStatus)
	}
	if sum.Attributed != 2 {
		t.Errorf("Attributed = %d, want 2", sum.Attributed)
	}
	if sum.Orphans != 1 {
		t.Errorf("Orphans = %d, want 1", sum.Orphans)
	}
	if !sum.TotalGross.Equal(amount(150000)) {
		t.Errorf("TotalGross = %s, want 150000", sum.TotalGross)
	}
	if !sum.TotalNet.Equal(amount(146700)) {
		t.Errorf("TotalNet = %s, want 146700", sum.TotalNet)
	}
	if !sum.OrphanGross.Equal(amount(20000)) || !sum.OrphanNet.Equal(amount(19000)) {
		t.Errorf("orphan totals = %s/%s, want 20000/19000", sum.OrphanGross, sum.OrphanNet)
	}
	if sum.NetMismatches != 0 {
		t.Errorf("NetMismatches = %d, want 0", sum.NetMismatches)
	}
}

func TestSummarize_FlagsNetMismatch(t *testing.T) {
	s := models.SettlementRecord{
		Status: models.StatusMatched,
		Activities: []models.ActivityRecord{
			{GrossAmount: amount(100), BusinessTax: amount(3), NetAmount: amount(90)},
		},
		TotalGross: amount(100),
		TotalNet:   amount(90),
	}

	sum := Summarize([]models.SettlementRecord{s}, nil)

	if sum.NetMismatches != 1 {
		t.Errorf("NetMismatches = %d, want 1", sum.NetMismatches)
	}
	if !sum.TotalNet.Equal(decimal.NewFromInt(90)) {
		t.Errorf("TotalNet = %s, want the supplied 90", sum.TotalNet)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, nil)
	if sum.People != 0 || !sum.TotalGross.IsZero() || !sum.OrphanNet.IsZero() {
		t.Errorf("unexpected summary for empty input: %+v", sum)
	}
	for _, status := range models.Statuses {
		if _, ok := sum.ByStatus[status]; !ok {
			t.Errorf("ByStatus missing %s", status)
		}
	}
}
