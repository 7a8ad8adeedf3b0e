package reconcile

import (
	"testing"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

func TestOrphans(t *testing.T) {
	people := []models.PersonRecord{
		{Name: "Lee", ResidentID: "A"},
		kim,
	}
	activities := []models.ActivityRecord{
		{Date: "1", Name: "Park", ResidentID: "B"},
		{Date: "2", Name: "Kim"},
		{Date: "3", Name: "Somebody", ResidentID: "900101-1234567"},
		{Date: "4"},
		{Date: "5", Name: "Lee"},
	}

	got := Orphans(people, activities)

	// Resident IDs "A" and "B" carry no digits and never link anything.
	wantDates := map[string]bool{"1": true, "4": true}
	if len(got) != len(wantDates) {
		t.Fatalf("len(Orphans) = %d, want %d: %+v", len(got), len(wantDates), got)
	}
	for _, a := range got {
		if !wantDates[a.Date] {
			t.Errorf("unexpected orphan %+v", a)
		}
	}
}

func TestOrphans_ComplementOfCandidates(t *testing.T) {
	people := []models.PersonRecord{
		{Name: "홍길동", ResidentID: "800101-1111111", PhoneNumber: "010-1234-5678"},
		{Name: "김철수", ResidentID: ""},
	}
	activities := []models.ActivityRecord{
		{Name: "홍길동"},
		{Name: "홍 길 동", ResidentID: "8001011111111"},
		{Name: "김철수"},
		{Name: "이영희", ResidentID: "900101-2222222"},
		{PhoneNumber: "010-1234-5678"},
	}

	orphans := Orphans(people, activities)
	isOrphan := make(map[string]bool)
	for _, a := range orphans {
		isOrphan[a.Name+"|"+a.ResidentID+"|"+a.PhoneNumber] = true
	}

	for _, a := range activities {
		candidate := false
		for _, p := range people {
			if IsCandidate(p, a) {
				candidate = true
			}
		}
		key := a.Name + "|" + a.ResidentID + "|" + a.PhoneNumber
		if candidate == isOrphan[key] {
			t.Errorf("row %q: candidate=%v orphan=%v", key, candidate, isOrphan[key])
		}
	}
}

func TestOrphans_EmptyRoster(t *testing.T) {
	activities := []models.ActivityRecord{{Name: "Kim"}, {Name: "Lee"}}
	if got := Orphans(nil, activities); len(got) != 2 {
		t.Errorf("len(Orphans) = %d, want 2", len(got))
	}
}
