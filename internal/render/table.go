package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/sheet"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)

	statusColors = map[models.MatchStatus]lipgloss.Color{
		models.StatusMatched:   lipgloss.Color("42"),  // green
		models.StatusPartial:   lipgloss.Color("214"), // orange
		models.StatusUnmatched: lipgloss.Color("241"), // grey
	}
)

var settlementHeaders = []string{"Name", "Resident ID", "Phone", "Bank", "Account", "Records", "Gross", "Net", "Status"}

// Settlement table columns that hold numbers.
const (
	colRecords = 5
	colGross   = 6
	colNet     = 7
	colStatus  = 8
)

// Table writes a summary line, the settlement table and, when requested,
// the orphan table.
func Table(w io.Writer, r Report, opts Options) error {
	sum := r.Summary
	header := fmt.Sprintf("%d people (matched %d, partial %d, unmatched %d), %d orphan rows",
		sum.People,
		sum.ByStatus[models.StatusMatched],
		sum.ByStatus[models.StatusPartial],
		sum.ByStatus[models.StatusUnmatched],
		sum.Orphans,
	)
	if _, err := fmt.Fprintln(w, titleStyle.Render(header)); err != nil {
		return err
	}

	rows := make([][]string, 0, len(r.Settlements)+1)
	statuses := make([]models.MatchStatus, 0, len(r.Settlements))
	for _, s := range r.Settlements {
		p := opts.person(s.PersonRecord)
		rows = append(rows, []string{
			p.Name,
			orDash(p.ResidentID),
			orDash(p.PhoneNumber),
			orDash(p.BankName),
			orDash(p.AccountNumber),
			strconv.Itoa(len(s.Activities)),
			Amount(s.TotalGross),
			Amount(s.TotalNet),
			s.Status.String(),
		})
		statuses = append(statuses, s.Status)
	}
	rows = append(rows, []string{"Total", "", "", "", "", strconv.Itoa(sum.Attributed), Amount(sum.TotalGross), Amount(sum.TotalNet), ""})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(settlementHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == colStatus && row < len(statuses):
				return cellStyle.Foreground(statusColors[statuses[row]])
			case col == colRecords || col == colGross || col == colNet:
				return amountStyle
			case row == len(statuses):
				return cellStyle.Bold(true)
			default:
				return cellStyle
			}
		})
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	if sum.NetMismatches > 0 {
		if _, err := fmt.Fprintf(w, "warning: %d rows have a net amount different from gross minus taxes; the sheet's net is used\n", sum.NetMismatches); err != nil {
			return err
		}
	}

	if !opts.Orphans || len(r.Orphans) == 0 {
		return nil
	}
	return orphanTable(w, r, opts)
}

func orphanTable(w io.Writer, r Report, opts Options) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("\nUnclaimed activity (%d rows)", len(r.Orphans)))); err != nil {
		return err
	}

	rows := make([][]string, 0, len(r.Orphans)+1)
	for _, orphan := range r.Orphans {
		a := opts.activity(orphan)
		rows = append(rows, []string{
			sheet.FormatDate(a.Date),
			orDash(a.Category),
			a.Name,
			orDash(a.ResidentID),
			orDash(a.PhoneNumber),
			Amount(a.GrossAmount),
			Amount(a.NetAmount),
		})
	}
	rows = append(rows, []string{"Total", "", "", "", "", Amount(r.Summary.OrphanGross), Amount(r.Summary.OrphanNet)})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Category", "Name", "Resident ID", "Phone", "Gross", "Net").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 5:
				return amountStyle
			default:
				return cellStyle
			}
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
