package buildlog

import (
	"path/filepath"
	"testing"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestAppendAndRecent(t *testing.T) {
	log := openTestLog(t)

	if err := log.Append(Record{SourcePath: "a.emg", SourceHash: "h1", Success: true, EmittedPath: "a.cpp", CompiledAt: 100}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := log.Append(Record{SourcePath: "b.emg", SourceHash: "h2", Success: false, ErrorCount: 1, CompiledAt: 200}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].SourcePath != "b.emg" {
		t.Errorf("expected newest-first ordering, got %q first", records[0].SourcePath)
	}
	if records[1].SourcePath != "a.emg" {
		t.Errorf("expected a.emg second, got %q", records[1].SourcePath)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	log := openTestLog(t)
	for i := 0; i < 5; i++ {
		if err := log.Append(Record{SourcePath: "x.emg", CompiledAt: int64(i)}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	records, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestAppendStampsCompiledAtWhenZero(t *testing.T) {
	log := openTestLog(t)
	if err := log.Append(Record{SourcePath: "a.emg"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	records, err := log.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].CompiledAt == 0 {
		t.Errorf("expected CompiledAt to be stamped, got 0")
	}
}
