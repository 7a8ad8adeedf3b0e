package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cobby8/allowance-manager-web/internal/sheet"
)

var csvHeader = []string{
	"status", "name", "resident_id", "phone_number", "bank_name", "account_number",
	"records", "total_gross", "total_net", "date", "category",
}

// CSV writes one row per settlement record. Orphan rows follow with status
// "orphan" when Options.Orphans is set; they carry the activity date and
// category. Amounts are plain decimals without separators.
func CSV(w io.Writer, r Report, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, s := range r.Settlements {
		p := opts.person(s.PersonRecord)
		err := cw.Write([]string{
			s.Status.String(),
			p.Name,
			p.ResidentID,
			p.PhoneNumber,
			p.BankName,
			p.AccountNumber,
			strconv.Itoa(len(s.Activities)),
			s.TotalGross.String(),
			s.TotalNet.String(),
			"",
			"",
		})
		if err != nil {
			return fmt.Errorf("writing csv row for %s: %w", p.Name, err)
		}
	}

	if opts.Orphans {
		for _, orphan := range r.Orphans {
			a := opts.activity(orphan)
			err := cw.Write([]string{
				"orphan",
				a.Name,
				a.ResidentID,
				a.PhoneNumber,
				a.BankName,
				a.AccountNumber,
				"1",
				a.GrossAmount.String(),
				a.NetAmount.String(),
				sheet.FormatDate(a.Date),
				a.Category,
			})
			if err != nil {
				return fmt.Errorf("writing csv orphan row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
