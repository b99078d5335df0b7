package index

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
	_ "modernc.org/sqlite"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// OpenSQL opens a "postgres" or "sqlite" document source and checks it is
// reachable.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported sql driver %q: %w", driver, apperrors.ErrInvalidInput)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s: %w: %v", driver, apperrors.ErrUnavailable, err)
	}
	return db, nil
}

// LoadSQL reads documents from the id and text columns of table.
func LoadSQL(ctx context.Context, db *sql.DB, table string) ([]Document, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q: %w", table, apperrors.ErrInvalidInput)
	}
	rows, err := db.QueryContext(ctx, `SELECT id, text FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var text sql.NullString
		if err := rows.Scan(&d.ID, &text); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Text = text.String
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}
