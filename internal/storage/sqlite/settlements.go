package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cobby8/allowance-manager-web/internal/models"
)

// insertSettlements writes settlement rows in roster order, each followed by
// its attributed activity rows.
func insertSettlements(ctx context.Context, tx *sql.Tx, runID string, settlements []models.SettlementRecord) error {
	for i, s := range settlements {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (run_id, position, person_key, name, resident_id,
			    phone_number, bank_name, account_number, status, total_gross, total_net)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, s.Key, s.Name, s.ResidentID,
			s.PhoneNumber, s.BankName, s.AccountNumber, string(s.Status),
			s.TotalGross.String(), s.TotalNet.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement for %s: %w", s.Name, err)
		}

		position := i
		if err := insertActivities(ctx, tx, runID, &position, s.Activities); err != nil {
			return fmt.Errorf("failed to insert activities for %s: %w", s.Name, err)
		}
	}
	return nil
}

// insertActivities writes activity rows. A nil position marks orphan rows.
func insertActivities(ctx context.Context, tx *sql.Tx, runID string, position *int, acts []models.ActivityRecord) error {
	var pos interface{} = nil
	if position != nil {
		pos = *position
	}

	for _, a := range acts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activities (run_id, settlement_position, date, category, name,
			    resident_id, phone_number, bank_name, account_number,
			    gross_amount, business_tax, local_tax, net_amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, pos, a.Date, a.Category, a.Name,
			a.ResidentID, a.PhoneNumber, a.BankName, a.AccountNumber,
			a.GrossAmount.String(), a.BusinessTax.String(), a.LocalTax.String(), a.NetAmount.String(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
