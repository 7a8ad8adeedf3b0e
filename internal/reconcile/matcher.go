package reconcile

import "github.com/cobby8/allowance-manager-web/internal/models"

// IsCandidate reports whether an activity row is loosely linked to a person:
// equal non-empty normalized names, or equal non-empty normalized resident IDs.
//
// Name equality admits false positives for common names. Such rows stay
// visible and are flagged through the partial status instead of being dropped.
func IsCandidate(p models.PersonRecord, a models.ActivityRecord) bool {
	return sameName(p.Name, a.Name) || sameDigits(p.ResidentID, a.ResidentID)
}

// IsStrictMatch reports whether a candidate row is confirmed by an equal
// non-empty resident ID or an equal non-empty phone number.
// Name equality alone never confirms a row.
func IsStrictMatch(p models.PersonRecord, a models.ActivityRecord) bool {
	return sameDigits(p.ResidentID, a.ResidentID) || sameDigits(p.PhoneNumber, a.PhoneNumber)
}

// Candidates returns the activity rows that are candidates for p, in input order.
func Candidates(p models.PersonRecord, activities []models.ActivityRecord) []models.ActivityRecord {
	var out []models.ActivityRecord
	for _, a := range activities {
		if IsCandidate(p, a) {
			out = append(out, a)
		}
	}
	return out
}

// Classify returns the match status of p given its candidate rows.
//
//   - no candidates: unmatched
//   - every candidate strictly matches: matched
//   - otherwise: partial
func Classify(p models.PersonRecord, candidates []models.ActivityRecord) models.MatchStatus {
	if len(candidates) == 0 {
		return models.StatusUnmatched
	}
	for _, a := range candidates {
		if !IsStrictMatch(p, a) {
			return models.StatusPartial
		}
	}
	return models.StatusMatched
}

// Match attributes activity rows to one person and classifies the result.
// In the partial case every candidate is kept, including the ones that fail
// the strict check, so a human can verify them.
func Match(p models.PersonRecord, activities []models.ActivityRecord) models.SettlementRecord {
	candidates := Candidates(p, activities)
	return Aggregate(p, candidates, Classify(p, candidates))
}

// MatchAll runs Match for every roster entry, preserving roster order.
// Each person is matched against the full activity log independently, so one
// activity row may be attributed to more than one person.
func MatchAll(people []models.PersonRecord, activities []models.ActivityRecord) []models.SettlementRecord {
	out := make([]models.SettlementRecord, len(people))
	for i, p := range people {
		out[i] = Match(p, activities)
	}
	return out
}
