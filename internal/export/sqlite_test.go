package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	"mime-registry/internal/mimetypes"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "types.db")

	if err := ToFile(ctx, path, FormatSQLite, "", sampleRecords()); err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}

	got, err := ReadSQLite(ctx, path)
	if err != nil {
		t.Fatalf("ReadSQLite() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleRecords()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, sampleRecords())
	}
}

func TestSQLiteReplacesRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "types.db")

	if err := WriteSQLite(ctx, path, sampleRecords()); err != nil {
		t.Fatalf("first WriteSQLite() error = %v", err)
	}
	if err := WriteSQLite(ctx, path, sampleRecords()[:1]); err != nil {
		t.Fatalf("second WriteSQLite() error = %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	counts := map[string]int{
		"mime_types":      1,
		"file_extensions": 3,
		"content_types":   2,
	}
	for table, want := range counts {
		var got int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s rows = %d, want %d", table, got, want)
		}
	}
}

func TestSQLiteLookupByExtension(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "types.db")

	if err := WriteSQLite(ctx, path, sampleRecords()); err != nil {
		t.Fatalf("WriteSQLite() error = %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	var name, category string
	err = db.QueryRowContext(ctx, `
		SELECT m.name, m.category
		FROM mime_types m
		JOIN file_extensions e ON e.mime_type_id = m.id
		WHERE e.extension = ? COLLATE NOCASE`, ".JPE").Scan(&name, &category)
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	if name != "JPEG Image" || category != string(mimetypes.CategoryImage) {
		t.Errorf("got (%q, %q), want (JPEG Image, image)", name, category)
	}
}

func TestReadSQLiteMissing(t *testing.T) {
	_, err := ReadSQLite(context.Background(), filepath.Join(t.TempDir(), "none.db"))
	if err == nil {
		t.Error("ReadSQLite() should fail for a missing database")
	}
}

func TestWriteSQLiteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteSQLite(ctx, filepath.Join(t.TempDir(), "types.db"), sampleRecords())
	if err == nil {
		t.Error("WriteSQLite() should fail with a canceled context")
	}
}
