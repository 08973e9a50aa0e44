package records_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"brunnhilde/internal/records"
	"brunnhilde/internal/testsupport"
)

func TestLoadStoresWellFormedRows(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()

	input := testsupport.ScanCSV(
		testsupport.Identified("/data/a.pdf", "h1", "fmt/276", "Acrobat PDF 1.7", "2012-03-04T10:00:00Z"),
		testsupport.Identified("/data/b.pdf", "h2", "fmt/276", "Acrobat PDF 1.7", "2013-03-04T10:00:00Z"),
		testsupport.Empty("/data/empty.txt", "2014-01-01T00:00:00Z"),
	)
	result, err := store.Load(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.Inserted != 3 || result.Skipped != 0 {
		t.Fatalf("unexpected load result: %+v", result)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 records, got %d", count)
	}

	recs, err := store.Records(ctx)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if recs[0].Filename != "/data/a.pdf" || recs[0].ID != "fmt/276" || recs[0].Hash != "h1" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if !recs[2].IsEmpty() {
		t.Fatalf("expected third record to be empty: %+v", recs[2])
	}
}

func TestLoadSkipsRowsWithWrongColumnCount(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()

	input := testsupport.ScanCSV(
		testsupport.Identified("/data/a.pdf", "h1", "fmt/276", "Acrobat PDF 1.7", "2012"),
		testsupport.Identified("/data/b.pdf", "h2", "fmt/276", "Acrobat PDF 1.7", "2013"),
	)
	input += "/data/truncated.doc,12,2011-01-01\n"
	input += "/data/long.doc,12,2011,,h9,pronom,fmt/40,Word,97,application/msword,ext,,extra\n"

	result, err := store.Load(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("expected 2 inserted rows, got %d", result.Inserted)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", result.Skipped)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records after skipping malformed rows, got %d", count)
	}
}

func TestLoadReplacesPreviousTable(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()

	first := testsupport.ScanCSV(
		testsupport.Identified("/a", "h1", "fmt/1", "A", "2001"),
		testsupport.Identified("/b", "h2", "fmt/2", "B", "2002"),
	)
	if _, err := store.Load(ctx, strings.NewReader(first)); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second := testsupport.ScanCSV(testsupport.Identified("/c", "h3", "fmt/3", "C", "2003"))
	if _, err := store.Load(ctx, strings.NewReader(second)); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected table to be recreated with 1 record, got %d", count)
	}
}

func TestLoadEmptyInputCreatesEmptyTable(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()

	result, err := store.Load(ctx, strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.Inserted != 0 {
		t.Fatalf("expected no rows, got %+v", result)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}

func TestLoadRejectsShortHeader(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	_, err := store.Load(context.Background(), strings.NewReader("filename,filesize\n/a,1\n"))
	if !errors.Is(err, records.ErrIncompatibleHeader) {
		t.Fatalf("expected ErrIncompatibleHeader, got %v", err)
	}
}

func TestLoadKeepsExtraHeaderColumns(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()

	header := strings.Join(testsupport.ScanHeader, ",") + ",namespace,id\n"
	row := "/a,10,2010,,h1,pronom,fmt/1,A,,text/plain,ext,,loc,fdd000001\n"
	result, err := store.Load(ctx, strings.NewReader(header+row))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("expected 1 row, got %+v", result)
	}
	cols := result.Columns
	if len(cols) != 14 || cols[12] != "namespace_2" || cols[13] != "id_2" {
		t.Fatalf("unexpected columns: %v", cols)
	}
	recs, err := store.Records(ctx)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if recs[0].ID != "fmt/1" {
		t.Fatalf("expected canonical id column, got %+v", recs[0])
	}
}

func TestOpenFileStoreLeavesDatabaseOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "siegfried.sqlite")
	store, err := records.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Load(ctx, strings.NewReader(testsupport.ScanCSV(testsupport.Identified("/a", "h", "fmt/1", "A", "2001")))); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := records.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected persisted row, got %d", count)
	}
	if reopened.Path() != path {
		t.Fatalf("unexpected path %q", reopened.Path())
	}
}
