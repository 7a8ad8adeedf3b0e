package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var kim = models.PersonRecord{
	Key:         "p-kim",
	Name:        "Kim",
	ResidentID:  "900101-1234567",
	PhoneNumber: "010-1111-2222",
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		person     models.PersonRecord
		activities []models.ActivityRecord
		wantStatus models.MatchStatus
		wantCount  int
		wantGross  int64
		wantNet    int64
	}{
		{
			name:   "name and id match, strict by id",
			person: kim,
			activities: []models.ActivityRecord{
				{Name: "Kim", ResidentID: "900101-1234567", PhoneNumber: "010-9999-0000", GrossAmount: amount(100000), NetAmount: amount(95000)},
			},
			wantStatus: models.StatusMatched,
			wantCount:  1,
			wantGross:  100000,
			wantNet:    95000,
		},
		{
			name:   "name only, strict fails",
			person: kim,
			activities: []models.ActivityRecord{
				{Name: "Kim", ResidentID: "000000-0000000", PhoneNumber: "010-0000-0000", GrossAmount: amount(50000), NetAmount: amount(48000)},
			},
			wantStatus: models.StatusPartial,
			wantCount:  1,
			wantGross:  50000,
			wantNet:    48000,
		},
		{
			name:   "no shared name or id",
			person: models.PersonRecord{Name: "Lee", ResidentID: "A"},
			activities: []models.ActivityRecord{
				{Name: "Park", ResidentID: "B", GrossAmount: amount(10), NetAmount: amount(9)},
			},
			wantStatus: models.StatusUnmatched,
		},
		{
			name:   "name only but phone confirms",
			person: kim,
			activities: []models.ActivityRecord{
				{Name: "Kim", PhoneNumber: "01011112222", GrossAmount: amount(30000), NetAmount: amount(29010)},
			},
			wantStatus: models.StatusMatched,
			wantCount:  1,
			wantGross:  30000,
			wantNet:    29010,
		},
		{
			name:   "mixed strict and loose keeps every candidate",
			person: kim,
			activities: []models.ActivityRecord{
				{Name: "Kim", ResidentID: "9001011234567", GrossAmount: amount(100000), NetAmount: amount(96700)},
				{Name: "Park", ResidentID: "800101-1000000", GrossAmount: amount(70000), NetAmount: amount(67690)},
				{Name: "Kim", ResidentID: "111111-1111111", GrossAmount: amount(50000), NetAmount: amount(48350)},
			},
			wantStatus: models.StatusPartial,
			wantCount:  2,
			wantGross:  150000,
			wantNet:    145050,
		},
		{
			name:   "id match with different name is a candidate",
			person: kim,
			activities: []models.ActivityRecord{
				{Name: "Kim Minsu", ResidentID: "900101 1234567", GrossAmount: amount(1), NetAmount: amount(1)},
			},
			wantStatus: models.StatusMatched,
			wantCount:  1,
			wantGross:  1,
			wantNet:    1,
		},
		{
			name:       "empty activity log",
			person:     kim,
			activities: nil,
			wantStatus: models.StatusUnmatched,
		},
		{
			name:   "empty fields never match each other",
			person: models.PersonRecord{},
			activities: []models.ActivityRecord{
				{GrossAmount: amount(5), NetAmount: amount(5)},
			},
			wantStatus: models.StatusUnmatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.person, tt.activities)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if len(got.Activities) != tt.wantCount {
				t.Errorf("len(Activities) = %d, want %d", len(got.Activities), tt.wantCount)
			}
			if !got.TotalGross.Equal(amount(tt.wantGross)) {
				t.Errorf("TotalGross = %s, want %d", got.TotalGross, tt.wantGross)
			}
			if !got.TotalNet.Equal(amount(tt.wantNet)) {
				t.Errorf("TotalNet = %s, want %d", got.TotalNet, tt.wantNet)
			}
			if got.Key != tt.person.Key || got.Name != tt.person.Name {
				t.Errorf("person fields not carried over: got %+v", got.PersonRecord)
			}
			if (got.Status == models.StatusUnmatched) != (len(got.Activities) == 0) {
				t.Errorf("unmatched iff empty violated: status %s with %d rows", got.Status, len(got.Activities))
			}
		})
	}
}

func TestMatch_AttributedIsSubsetInOrder(t *testing.T) {
	activities := []models.ActivityRecord{
		{Date: "10/1", Name: "Kim", ResidentID: "900101-1234567"},
		{Date: "10/2", Name: "Lee"},
		{Date: "10/3", Name: "Kim"},
		{Date: "10/4", ResidentID: "9001011234567"},
	}

	got := Match(kim, activities)

	wantDates := []string{"10/1", "10/3", "10/4"}
	if len(got.Activities) != len(wantDates) {
		t.Fatalf("len(Activities) = %d, want %d", len(got.Activities), len(wantDates))
	}
	for i, a := range got.Activities {
		if a.Date != wantDates[i] {
			t.Errorf("Activities[%d].Date = %s, want %s", i, a.Date, wantDates[i])
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	activities := []models.ActivityRecord{
		{Name: "Kim", ResidentID: "900101-1234567", GrossAmount: amount(10), NetAmount: amount(9)},
		{Name: "Kim", GrossAmount: amount(20), NetAmount: amount(18)},
	}

	first := Match(kim, activities)
	second := Match(kim, activities)

	if first.Status != second.Status || !first.TotalGross.Equal(second.TotalGross) || len(first.Activities) != len(second.Activities) {
		t.Errorf("Match is not deterministic: %+v vs %+v", first, second)
	}
}

func TestClassify(t *testing.T) {
	strict := models.ActivityRecord{Name: "Kim", ResidentID: "900101-1234567"}
	loose := models.ActivityRecord{Name: "Kim"}

	tests := []struct {
		name       string
		candidates []models.ActivityRecord
		want       models.MatchStatus
	}{
		{name: "none", candidates: nil, want: models.StatusUnmatched},
		{name: "all strict", candidates: []models.ActivityRecord{strict, strict}, want: models.StatusMatched},
		{name: "one loose", candidates: []models.ActivityRecord{strict, loose}, want: models.StatusPartial},
		{name: "all loose", candidates: []models.ActivityRecord{loose}, want: models.StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(kim, tt.candidates); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMatchAll_PreservesRosterOrder(t *testing.T) {
	people := []models.PersonRecord{
		{Key: "1", Name: "Lee"},
		kim,
		{Key: "3", Name: "Lee"},
	}
	activities := []models.ActivityRecord{{Name: "Lee"}}

	got := MatchAll(people, activities)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, p := range people {
		if got[i].Key != p.Key {
			t.Errorf("got[%d].Key = %s, want %s", i, got[i].Key, p.Key)
		}
	}
	// Both people named Lee are distinct records and both see the row.
	if got[0].Status != models.StatusPartial || got[2].Status != models.StatusPartial {
		t.Errorf("expected both Lee records partial, got %s and %s", got[0].Status, got[2].Status)
	}
	if got[1].Status != models.StatusUnmatched {
		t.Errorf("Kim status = %s, want unmatched", got[1].Status)
	}
}
