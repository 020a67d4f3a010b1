package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
)

type InterestRepository struct {
	db *sql.DB
}

func NewInterestRepository(conn *Connection) *InterestRepository {
	return &InterestRepository{db: conn.GetDB()}
}

func (r *InterestRepository) AddInterest(ctx context.Context, itemID, userID string) (bool, error) {
	query := `
		INSERT INTO interests (user_id, item_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, item_id) DO NOTHING
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "interests", query, userID, itemID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *InterestRepository) RemoveInterest(ctx context.Context, itemID, userID string) (bool, error) {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "interests",
		"DELETE FROM interests WHERE user_id = $1 AND item_id = $2", userID, itemID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *InterestRepository) IsInterested(ctx context.Context, itemID, userID string) (bool, error) {
	var exists bool
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "interests",
		"SELECT EXISTS(SELECT 1 FROM interests WHERE user_id = $1 AND item_id = $2)", userID, itemID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *InterestRepository) CountForItem(ctx context.Context, itemID string) (int, error) {
	var count int
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "interests",
		"SELECT COUNT(*) FROM interests WHERE item_id = $1", itemID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InterestRepository) CountForItems(ctx context.Context, itemIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(itemIDs))
	if len(itemIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT item_id, COUNT(*)
		FROM interests
		WHERE item_id = ANY($1)
		GROUP BY item_id
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "interests", query, pq.Array(itemIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID string
		var count int
		if err := rows.Scan(&itemID, &count); err != nil {
			return nil, err
		}
		counts[itemID] = count
	}
	return counts, rows.Err()
}

func (r *InterestRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	var count int
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "interests",
		"SELECT COUNT(*) FROM interests WHERE user_id = $1", userID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
