package account

import (
	"context"
	"time"

	"deluxeblackjack-server/pkg/db"
)

const purchaseColumns = `
purchase_history.id,
purchase_history.user_id,
purchase_history.amount,
purchase_history.balance_after,
purchase_history.created`

// Purchase is one add-funds event, a row in the `purchase_history` table.
// These are play chips; no real money changes hands.
type Purchase struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Amount       int       `json:"amount"`
	BalanceAfter int       `json:"balanceAfter"`
	Created      time.Time `json:"created"`
}

// AddFunds credits the user's balance and records the purchase in one
// transaction, returning the purchase row
func (u *User) AddFunds(ctx context.Context, amount int) (*Purchase, error) {
	if amount <= 0 {
		return nil, UserError("amount must be positive")
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const updateQuery = `
UPDATE users
SET balance = balance + $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2
RETURNING balance`

	var balance int
	if err := tx.QueryRowContext(ctx, updateQuery, amount, u.ID).Scan(&balance); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	const insertQuery = `
INSERT INTO purchase_history (user_id, amount, balance_after)
VALUES ($1, $2, $3)
RETURNING ` + purchaseColumns

	var p Purchase
	row := tx.QueryRowContext(ctx, insertQuery, u.ID, amount, balance)
	if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.BalanceAfter, &p.Created); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	u.Balance = balance
	return &p, nil
}

// GetPurchaseHistory returns the user's add-funds events, most recent first
func GetPurchaseHistory(ctx context.Context, userID int64, offset int64, limit int) ([]*Purchase, error) {
	const query = `
SELECT ` + purchaseColumns + `
FROM purchase_history
WHERE user_id = $1
ORDER BY id DESC
OFFSET $2
LIMIT $3`

	rows, err := db.Instance().QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := make([]*Purchase, 0)
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &p.BalanceAfter, &p.Created); err != nil {
			return nil, err
		}

		purchases = append(purchases, &p)
	}

	return purchases, nil
}
