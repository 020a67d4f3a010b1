package postgres

import (
	"context"
	"database/sql"
	"errors"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(conn *Connection) *TransactionRepository {
	return &TransactionRepository{db: conn.GetDB()}
}

// MarkItemAsSold flips the sold flag and writes the transaction record in one
// database transaction. The UPDATE is guarded by sold = FALSE, so of two
// concurrent buyers only one statement reports an affected row; the other
// rolls back with ErrItemAlreadySold. The UNIQUE constraint on
// transactions.item_id backs the same invariant.
func (r *TransactionRepository) MarkItemAsSold(ctx context.Context, txn *market.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE items
		SET sold = TRUE, sold_to = $2, sold_at = $3
		WHERE id = $1 AND sold = FALSE
	`
	result, err := monitoring.InstrumentTxExec(ctx, tx, "UPDATE", "items", update,
		txn.ItemID, txn.BuyerID, txn.CreatedAt)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		row := monitoring.InstrumentTxQueryRow(ctx, tx, "SELECT", "items",
			"SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)", txn.ItemID)
		if err := row.Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domainErrors.ErrItemNotFound
		}
		return domainErrors.ErrItemAlreadySold
	}

	insert := `
		INSERT INTO transactions (id, item_id, buyer_id, seller_id, price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = monitoring.InstrumentTxExec(ctx, tx, "INSERT", "transactions", insert,
		txn.ID, txn.ItemID, txn.BuyerID, txn.SellerID, txn.PriceCents, txn.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TransactionRepository) IsSold(ctx context.Context, itemID string) (bool, error) {
	var sold bool
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "items",
		"SELECT sold FROM items WHERE id = $1", itemID)
	if err := row.Scan(&sold); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domainErrors.ErrItemNotFound
		}
		return false, err
	}
	return sold, nil
}

func (r *TransactionRepository) GetTransactionByItem(ctx context.Context, itemID string) (*market.Transaction, error) {
	query := `
		SELECT id, item_id, buyer_id, seller_id, price_cents, created_at
		FROM transactions
		WHERE item_id = $1
	`

	var t market.Transaction
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "transactions", query, itemID)
	err := row.Scan(&t.ID, &t.ItemID, &t.BuyerID, &t.SellerID, &t.PriceCents, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}
	return &t, nil
}
