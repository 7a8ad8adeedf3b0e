package storage

import "testing"

func TestFingerprint(t *testing.T) {
	base := [][]string{{"성명", "연락처"}, {"Kim", "010-1234-5678"}}

	if got := Fingerprint(base); got != Fingerprint([][]string{{"성명", "연락처"}, {"Kim", "010-1234-5678"}}) {
		t.Errorf("Fingerprint is not deterministic: %s", got)
	}
	if got := len(Fingerprint(base)); got != 64 {
		t.Errorf("Expected 64 hex characters, got %d", got)
	}

	tests := []struct {
		name string
		rows [][]string
	}{
		{"cell text moved between cells", [][]string{{"성명연락처"}, {"Kim", "010-1234-5678"}}},
		{"cell moved to the next row", [][]string{{"성명"}, {"연락처", "Kim", "010-1234-5678"}}},
		{"value changed", [][]string{{"성명", "연락처"}, {"Kim", "010-1234-5679"}}},
		{"trailing empty cell", [][]string{{"성명", "연락처", ""}, {"Kim", "010-1234-5678"}}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Fingerprint(tt.rows) == Fingerprint(base) {
				t.Errorf("Expected a different fingerprint for %v", tt.rows)
			}
		})
	}
}
