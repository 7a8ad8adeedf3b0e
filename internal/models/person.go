package models

// PersonRecord represents one roster entry.
// It is immutable once loaded.
type PersonRecord struct {
	// Key is an opaque identifier generated at load time (UUID format).
	// It carries no meaning beyond distinguishing rows.
	Key string

	// Name is the person's name as entered in the roster.
	Name string

	// ResidentID is the national-ID-like identifier (e.g. "900101-1234567").
	ResidentID string

	Address string

	// PhoneNumber is formatted as XXX-XXXX-XXXX when it has 10 or 11 digits,
	// otherwise kept as entered.
	PhoneNumber string

	BankName      string
	AccountNumber string

	// WorkDate, WorkPlace and DailyRate are roster-level defaults shown on
	// documents when no activity log is loaded.
	WorkDate  string
	WorkPlace string
	DailyRate string

	// Attachment references (usually Google Drive share links).
	IDCardImage   string
	BankBookImage string
	LicenseImage  string
}

// Attachments returns the non-empty attachment references in display order.
func (p PersonRecord) Attachments() []string {
	var refs []string
	for _, ref := range []string{p.IDCardImage, p.BankBookImage, p.LicenseImage} {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
