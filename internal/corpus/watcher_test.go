package corpus

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherInitialSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	writeTestWorkbook(t, path, [][]any{
		{"title", "location"},
		{"Backend Developer", "Jakarta"},
	})

	watcher, err := NewWatcher(NewLoader("", nil), path, 50*time.Millisecond, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	snap := watcher.Snapshot()
	if len(snap) != 1 || snap[0].Title != "Backend Developer" {
		t.Errorf("Snapshot() = %+v, want the initial corpus", snap)
	}
	if watcher.IsRunning() {
		t.Error("watcher must not be running before Start()")
	}
}

func TestWatcherInitialLoadFailure(t *testing.T) {
	_, err := NewWatcher(NewLoader("", nil), filepath.Join(t.TempDir(), "nope.xlsx"), 0, nil, nil)
	if err == nil {
		t.Fatal("NewWatcher() expected error for missing corpus")
	}
}

func TestWatcherReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.xlsx")
	writeTestWorkbook(t, path, [][]any{
		{"title", "location"},
		{"Backend Developer", "Jakarta"},
	})

	reloaded := make(chan int, 1)
	onReload := func(count int) {
		select {
		case reloaded <- count:
		default:
		}
	}

	watcher, err := NewWatcher(NewLoader("", nil), path, 50*time.Millisecond, onReload, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	}()

	// The modification time granularity on some filesystems is one second.
	time.Sleep(1100 * time.Millisecond)
	writeTestWorkbook(t, path, [][]any{
		{"title", "location"},
		{"Backend Developer", "Jakarta"},
		{"Data Analyst", "Bandung"},
	})

	select {
	case count := <-reloaded:
		if count != 2 {
			t.Errorf("reload reported %d records, want 2", count)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for corpus reload")
	}

	if snap := watcher.Snapshot(); len(snap) != 2 {
		t.Errorf("Snapshot() after reload has %d records, want 2", len(snap))
	}
}
