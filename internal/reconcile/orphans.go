package reconcile

import "github.com/cobby8/allowance-manager-web/internal/models"

// Orphans returns the activity rows that are not a candidate for any roster
// entry, in input order. These need manual reconciliation: the person is
// missing from the roster or was entered very differently.
func Orphans(people []models.PersonRecord, activities []models.ActivityRecord) []models.ActivityRecord {
	var out []models.ActivityRecord
	for _, a := range activities {
		if !claimed(people, a) {
			out = append(out, a)
		}
	}
	return out
}

func claimed(people []models.PersonRecord, a models.ActivityRecord) bool {
	for _, p := range people {
		if IsCandidate(p, a) {
			return true
		}
	}
	return false
}
