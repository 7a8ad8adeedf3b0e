package render

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/sheet"
)

type jsonReport struct {
	Summary     jsonSummary      `json:"summary"`
	Settlements []jsonSettlement `json:"settlements"`
	Orphans     []jsonActivity   `json:"orphans,omitempty"`
}

type jsonSummary struct {
	People        int                        `json:"people"`
	ByStatus      map[models.MatchStatus]int `json:"by_status"`
	Attributed    int                        `json:"attributed"`
	Orphans       int                        `json:"orphans"`
	TotalGross    decimal.Decimal            `json:"total_gross"`
	TotalNet      decimal.Decimal            `json:"total_net"`
	OrphanGross   decimal.Decimal            `json:"orphan_gross"`
	OrphanNet     decimal.Decimal            `json:"orphan_net"`
	NetMismatches int                        `json:"net_mismatches"`
}

type jsonSettlement struct {
	Key           string             `json:"key"`
	Name          string             `json:"name"`
	ResidentID    string             `json:"resident_id,omitempty"`
	Address       string             `json:"address,omitempty"`
	PhoneNumber   string             `json:"phone_number,omitempty"`
	BankName      string             `json:"bank_name,omitempty"`
	AccountNumber string             `json:"account_number,omitempty"`
	WorkPlace     string             `json:"work_place,omitempty"`
	Attachments   []string           `json:"attachments,omitempty"`
	Status        models.MatchStatus `json:"status"`
	TotalGross    decimal.Decimal    `json:"total_gross"`
	TotalNet      decimal.Decimal    `json:"total_net"`
	Activities    []jsonActivity     `json:"activities"`
}

type jsonActivity struct {
	Date          string          `json:"date"`
	Category      string          `json:"category,omitempty"`
	Name          string          `json:"name"`
	ResidentID    string          `json:"resident_id,omitempty"`
	PhoneNumber   string          `json:"phone_number,omitempty"`
	BankName      string          `json:"bank_name,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	BusinessTax   decimal.Decimal `json:"business_tax"`
	LocalTax      decimal.Decimal `json:"local_tax"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

// JSON writes the report as one indented JSON document. Amounts are decimal
// strings so no precision is lost.
func JSON(w io.Writer, r Report, opts Options) error {
	out := jsonReport{
		Summary: jsonSummary{
			People:        r.Summary.People,
			ByStatus:      r.Summary.ByStatus,
			Attributed:    r.Summary.Attributed,
			Orphans:       r.Summary.Orphans,
			TotalGross:    r.Summary.TotalGross,
			TotalNet:      r.Summary.TotalNet,
			OrphanGross:   r.Summary.OrphanGross,
			OrphanNet:     r.Summary.OrphanNet,
			NetMismatches: r.Summary.NetMismatches,
		},
		Settlements: make([]jsonSettlement, 0, len(r.Settlements)),
	}

	for _, s := range r.Settlements {
		p := opts.person(s.PersonRecord)
		js := jsonSettlement{
			Key:           p.Key,
			Name:          p.Name,
			ResidentID:    p.ResidentID,
			Address:       p.Address,
			PhoneNumber:   p.PhoneNumber,
			BankName:      p.BankName,
			AccountNumber: p.AccountNumber,
			WorkPlace:     p.WorkPlace,
			Attachments:   directLinks(p.Attachments()),
			Status:        s.Status,
			TotalGross:    s.TotalGross,
			TotalNet:      s.TotalNet,
			Activities:    make([]jsonActivity, 0, len(s.Activities)),
		}
		for _, a := range s.Activities {
			js.Activities = append(js.Activities, toJSONActivity(opts.activity(a)))
		}
		out.Settlements = append(out.Settlements, js)
	}

	if opts.Orphans {
		for _, a := range r.Orphans {
			out.Orphans = append(out.Orphans, toJSONActivity(opts.activity(a)))
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONActivity(a models.ActivityRecord) jsonActivity {
	return jsonActivity{
		Date:          sheet.FormatDate(a.Date),
		Category:      a.Category,
		Name:          a.Name,
		ResidentID:    a.ResidentID,
		PhoneNumber:   a.PhoneNumber,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		GrossAmount:   a.GrossAmount,
		BusinessTax:   a.BusinessTax,
		LocalTax:      a.LocalTax,
		NetAmount:     a.NetAmount,
	}
}
