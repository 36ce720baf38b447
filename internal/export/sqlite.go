package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"mime-registry/internal/logging"
	"mime-registry/internal/mimetypes"
)

const defaultTimeout = 5 * time.Second

const schema = `
	CREATE TABLE IF NOT EXISTS mime_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		is_primary INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS file_extensions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mime_type_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		extension TEXT NOT NULL,
		FOREIGN KEY (mime_type_id) REFERENCES mime_types(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_file_extensions_extension ON file_extensions(extension COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_file_extensions_type ON file_extensions(mime_type_id, position);

	CREATE TABLE IF NOT EXISTS content_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mime_type_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		FOREIGN KEY (mime_type_id) REFERENCES mime_types(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_content_types_content_type ON content_types(content_type COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_content_types_type ON content_types(mime_type_id, position);
	`

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	connStr := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	return db, nil
}

// WriteSQLite stores records in the SQLite database at path. Existing
// mime type rows are replaced.
func WriteSQLite(ctx context.Context, path string, records []*mimetypes.Record) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error("failed to close database: %v", err)
		}
	}()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logging.Error("failed to rollback transaction: %v", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM mime_types"); err != nil {
		return fmt.Errorf("failed to clear mime types: %w", err)
	}

	typeStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO mime_types (name, description, category, is_primary) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer typeStmt.Close()

	extStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO file_extensions (mime_type_id, position, extension) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer extStmt.Close()

	ctStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO content_types (mime_type_id, position, content_type) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer ctStmt.Close()

	for _, rec := range records {
		if rec == nil {
			continue
		}

		res, err := typeStmt.ExecContext(ctx, rec.Name, rec.Description, string(rec.Category), rec.Primary)
		if err != nil {
			return fmt.Errorf("failed to insert %q: %w", rec.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get id of %q: %w", rec.Name, err)
		}

		for i, ext := range rec.FileExts {
			if _, err := extStmt.ExecContext(ctx, id, i, ext); err != nil {
				return fmt.Errorf("failed to insert extension %q: %w", ext, err)
			}
		}
		for i, ct := range rec.ContentTypes {
			if _, err := ctStmt.ExecContext(ctx, id, i, ct); err != nil {
				return fmt.Errorf("failed to insert content type %q: %w", ct, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Info("Exported %d records to SQLite database %s", len(records), path)
	return nil
}

// ReadSQLite loads the records stored by WriteSQLite, in insertion order.
func ReadSQLite(ctx context.Context, path string) ([]*mimetypes.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error("failed to close database: %v", err)
		}
	}()

	rows, err := db.QueryContext(ctx,
		"SELECT id, name, description, category, is_primary FROM mime_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query mime types: %w", err)
	}

	var records []*mimetypes.Record
	byID := make(map[int64]*mimetypes.Record)
	for rows.Next() {
		var (
			id       int64
			category string
		)
		rec := &mimetypes.Record{FileExts: []string{}, ContentTypes: []string{}}
		if err := rows.Scan(&id, &rec.Name, &rec.Description, &category, &rec.Primary); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan mime type: %w", err)
		}
		rec.Category = mimetypes.Category(category)
		if !rec.Category.IsValid() {
			rec.Category = mimetypes.CategoryUnknown
		}
		records = append(records, rec)
		byID[id] = rec
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate mime types: %w", err)
	}
	rows.Close()

	if err := readKeys(ctx, db, "SELECT mime_type_id, extension FROM file_extensions ORDER BY mime_type_id, position",
		byID, func(rec *mimetypes.Record, v string) { rec.FileExts = append(rec.FileExts, v) }); err != nil {
		return nil, err
	}
	if err := readKeys(ctx, db, "SELECT mime_type_id, content_type FROM content_types ORDER BY mime_type_id, position",
		byID, func(rec *mimetypes.Record, v string) { rec.ContentTypes = append(rec.ContentTypes, v) }); err != nil {
		return nil, err
	}

	return records, nil
}

func readKeys(ctx context.Context, db *sql.DB, query string, byID map[int64]*mimetypes.Record, add func(*mimetypes.Record, string)) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			value string
		)
		if err := rows.Scan(&id, &value); err != nil {
			return fmt.Errorf("failed to scan key: %w", err)
		}
		if rec, ok := byID[id]; ok {
			add(rec, value)
		}
	}
	return rows.Err()
}
