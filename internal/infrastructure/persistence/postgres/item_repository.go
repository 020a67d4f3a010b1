package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{db: conn.GetDB()}
}

const itemColumns = "id, owner_id, title, short_desc, long_desc, price_cents, sold, sold_to, sold_at, created_at"

func (r *ItemRepository) CreateItem(ctx context.Context, item *market.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO items (id, owner_id, title, short_desc, long_desc, price_cents, sold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`
	_, err = monitoring.InstrumentTxExec(ctx, tx, "INSERT", "items", query,
		item.ID, item.OwnerID, item.Title, item.ShortDesc, item.LongDesc, item.PriceCents, item.CreatedAt,
	)
	if err != nil {
		return err
	}

	for pos, ref := range item.Images {
		_, err = monitoring.InstrumentTxExec(ctx, tx, "INSERT", "item_images",
			"INSERT INTO item_images (item_id, position, ref) VALUES ($1, $2, $3)",
			item.ID, pos, ref,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id string) (*market.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE id = $1"

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "items", query, id)
	item, err := scanItem(row)
	if err != nil {
		return nil, err
	}

	images, err := r.GetImages(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	item.Images = images[id]

	return item, nil
}

func (r *ItemRepository) GetAllItems(ctx context.Context) ([]*market.Item, error) {
	query := "SELECT " + itemColumns + " FROM items ORDER BY id"
	return r.queryItems(ctx, query)
}

func (r *ItemRepository) GetItemsByOwner(ctx context.Context, ownerID string) ([]*market.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE owner_id = $1 ORDER BY id"
	return r.queryItems(ctx, query, ownerID)
}

func (r *ItemRepository) SearchItems(ctx context.Context, term string) ([]*market.Item, error) {
	if term == "" {
		return nil, nil
	}

	query := "SELECT " + itemColumns + ` FROM items
		WHERE title ILIKE '%' || $1 || '%'
		   OR short_desc ILIKE '%' || $1 || '%'
		   OR long_desc ILIKE '%' || $1 || '%'
		ORDER BY id`
	return r.queryItems(ctx, query, term)
}

func (r *ItemRepository) UpdateItem(ctx context.Context, id string, patch market.ItemPatch) error {
	query := `
		UPDATE items
		SET title = COALESCE($2, title),
		    price_cents = COALESCE($3, price_cents),
		    short_desc = COALESCE($4, short_desc),
		    long_desc = COALESCE($5, long_desc)
		WHERE id = $1 AND sold = FALSE
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "items", query,
		id, patch.Title, patch.PriceCents, patch.ShortDesc, patch.LongDesc,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: either the item vanished or it sold meanwhile.
	var sold bool
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "items", "SELECT sold FROM items WHERE id = $1", id)
	if err := row.Scan(&sold); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domainErrors.ErrItemNotFound
		}
		return err
	}
	return domainErrors.ErrSoldItemImmutable
}

// DeleteItem removes the row; image references and interest rows go with it
// via ON DELETE CASCADE. Transaction records are kept as history.
func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "items",
		"DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) GetImages(ctx context.Context, itemIDs []string) (map[string][]string, error) {
	images := make(map[string][]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return images, nil
	}

	query := `
		SELECT item_id, ref
		FROM item_images
		WHERE item_id = ANY($1)
		ORDER BY item_id, position
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "item_images", query, pq.Array(itemIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, ref string
		if err := rows.Scan(&itemID, &ref); err != nil {
			return nil, err
		}
		images[itemID] = append(images[itemID], ref)
	}
	return images, rows.Err()
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*market.Item, error) {
	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "items", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*market.Item
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row *sql.Row) (*market.Item, error) {
	var i market.Item
	var soldTo sql.NullString
	err := row.Scan(&i.ID, &i.OwnerID, &i.Title, &i.ShortDesc, &i.LongDesc, &i.PriceCents, &i.Sold, &soldTo, &i.SoldAt, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}
	i.SoldTo = soldTo.String
	return &i, nil
}

func scanItemRows(rows *sql.Rows) (*market.Item, error) {
	var i market.Item
	var soldTo sql.NullString
	err := rows.Scan(&i.ID, &i.OwnerID, &i.Title, &i.ShortDesc, &i.LongDesc, &i.PriceCents, &i.Sold, &soldTo, &i.SoldAt, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	i.SoldTo = soldTo.String
	return &i, nil
}
