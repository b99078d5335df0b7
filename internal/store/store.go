package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/prototype"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

var zoneNames = [4]string{"core", "zone1", "zone2", "zone3"}

// SaveReport stores r in one transaction and returns the new run id.
func (s *Store) SaveReport(ctx context.Context, r *analysis.Report) (int64, error) {
	ents, err := json.Marshal(r.Entities)
	if err != nil {
		return 0, fmt.Errorf("marshal entities: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(source, mode, language, tokens, distinct_words, mean_ome, entities, created_at) VALUES(?,?,?,?,?,?,?,?)`,
		r.Source,
		string(r.Mode),
		r.Language.Code,
		r.OME.Tokens,
		len(r.OME.Ranked),
		r.Zones.MeanOME,
		string(ents),
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run last insert id: %w", err)
	}

	counts := r.OME.Frequencies()
	for i, w := range r.OME.Ranked {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO words(run_id, rank, word, count, ome) VALUES(?,?,?,?,?)`,
			runID, i, w, counts[w], r.OME.Table[w],
		); err != nil {
			return 0, fmt.Errorf("insert word: %w", err)
		}
	}

	for zi, entries := range [4][]prototype.Entry{r.Zones.Core, r.Zones.Zone1, r.Zones.Zone2, r.Zones.Zone3} {
		for pos, e := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO zone_entries(run_id, zone, position, word, normalized) VALUES(?,?,?,?,?)`,
				runID, zoneNames[zi], pos, e.Word, e.Normalized,
			); err != nil {
				return 0, fmt.Errorf("insert zone entry: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return runID, nil
}

// LoadZones reads back the zones stored for runID.
func (s *Store) LoadZones(ctx context.Context, runID int64) (prototype.Zones, error) {
	zones := prototype.Zones{
		Core:  []prototype.Entry{},
		Zone1: []prototype.Entry{},
		Zone2: []prototype.Entry{},
		Zone3: []prototype.Entry{},
	}
	err := s.db.QueryRowContext(ctx, `SELECT mean_ome FROM runs WHERE id = ?`, runID).Scan(&zones.MeanOME)
	if errors.Is(err, sql.ErrNoRows) {
		return prototype.Zones{}, fmt.Errorf("run %d: %w", runID, apperrors.ErrNotFound)
	}
	if err != nil {
		return prototype.Zones{}, fmt.Errorf("select run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT zone, word, normalized FROM zone_entries WHERE run_id = ? ORDER BY zone, position`, runID)
	if err != nil {
		return prototype.Zones{}, fmt.Errorf("select zone entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var zone string
		var e prototype.Entry
		if err := rows.Scan(&zone, &e.Word, &e.Normalized); err != nil {
			return prototype.Zones{}, fmt.Errorf("scan zone entry: %w", err)
		}
		switch zone {
		case "core":
			zones.Core = append(zones.Core, e)
		case "zone1":
			zones.Zone1 = append(zones.Zone1, e)
		case "zone2":
			zones.Zone2 = append(zones.Zone2, e)
		case "zone3":
			zones.Zone3 = append(zones.Zone3, e)
		}
	}
	if err := rows.Err(); err != nil {
		return prototype.Zones{}, fmt.Errorf("iterate zone entries: %w", err)
	}
	return zones, nil
}

// CountRows returns the number of rows in one of the store's tables.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	switch table {
	case "runs", "words", "zone_entries":
	default:
		return 0, fmt.Errorf("unknown table %q: %w", table, apperrors.ErrInvalidInput)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
