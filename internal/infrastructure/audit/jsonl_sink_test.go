package audit

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/betfaro/engine/internal/domain/analysis"
	domaudit "github.com/betfaro/engine/internal/domain/audit"
)

func sampleRecord(id string) domaudit.Record {
	return domaudit.Record{
		ID:         id,
		Time:       time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC),
		TeamID:     42,
		TeamName:   "Flamengo",
		Requested:  10,
		FixtureIDs: []int64{1000, 999},
		Exclusions: analysis.Exclusions{Friendlies: 1},
		Stats:      analysis.TeamStats{FixturesUsed: 2, Wins: 2, WinPct: 100},
		Form:       "V V",
		Consistent: true,
	}
}

func TestJSONLSink_AppendsOneLinePerRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	t.Cleanup(func() { _ = sink.Close() })

	for _, id := range []string{"a", "b", "c"} {
		if err := sink.Write(context.Background(), sampleRecord(id)); err != nil {
			t.Fatalf("write %q: %v", id, err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record domaudit.Record
		if err := sonic.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		ids = append(ids, record.ID)
		if record.TeamID != 42 {
			t.Fatalf("team id = %d, want 42", record.TeamID)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("ids = %v, want [a b c]", ids)
	}
}

func TestJSONLSink_ConcurrentWritesNeverInterleave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	t.Cleanup(func() { _ = sink.Close() })

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			record := sampleRecord("w")
			record.FixtureIDs = []int64{int64(n)}
			_ = sink.Write(context.Background(), record)
		}(i)
	}
	wg.Wait()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record domaudit.Record
		if err := sonic.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("line %d is not valid json: %v", lines, err)
		}
		lines++
	}
	if lines != writers {
		t.Fatalf("lines = %d, want %d", lines, writers)
	}
}

func TestJSONLSink_WriteAfterCloseFails(t *testing.T) {
	t.Parallel()

	sink, err := NewJSONLSink(filepath.Join(t.TempDir(), "audit.jsonl"))
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := sink.Write(context.Background(), sampleRecord("late")); err == nil {
		t.Fatal("expected write on closed sink to fail")
	}
}

func TestJSONLSink_CreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deep", "audit.jsonl")
	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	t.Cleanup(func() { _ = sink.Close() })

	if err := sink.Write(context.Background(), sampleRecord("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
