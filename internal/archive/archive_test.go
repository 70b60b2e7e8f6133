package archive_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/syllabus/internal/archive"
	"github.com/JaimeStill/syllabus/pkg/lifecycle"
	"github.com/JaimeStill/syllabus/pkg/storage"
)

var fixed = time.Date(2026, 3, 9, 14, 5, 7, 0, time.UTC)

func newStore(t *testing.T) (storage.System, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.New(&storage.Config{Backend: storage.BackendLocal, Directory: dir}, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	lc := lifecycle.New()
	if err := store.Start(lc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	lc.WaitForStartup()

	return store, dir
}

func newArchive(t *testing.T, opts archive.Options) (*archive.Archive, string) {
	t.Helper()

	store, dir := newStore(t)
	opts.Now = func() time.Time { return fixed }
	return archive.New(store, opts, slog.New(slog.DiscardHandler)), dir
}

// failingStore rejects uploads whose key ends in suffix.
type failingStore struct {
	storage.System
	suffix string
}

func (s *failingStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	if strings.HasSuffix(key, s.suffix) {
		return errors.New("disk full")
	}
	return s.System.Upload(ctx, key, r, contentType)
}

func TestPersistNaming(t *testing.T) {
	a, dir := newArchive(t, archive.Options{Label: "syllabus"})

	path, err := a.Persist(context.Background(), "Physics", "# Physics Lesson Plan\n", nil)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}

	want := filepath.Join(dir, "Physics_syllabus_20260309_140507.md")
	if path != want {
		t.Errorf("Persist path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if string(data) != "# Physics Lesson Plan\n" {
		t.Errorf("document = %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "Physics_syllabus_20260309_140507.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("json dump written with DumpJSON disabled: %v", err)
	}
}

func TestPersistJSONDump(t *testing.T) {
	a, dir := newArchive(t, archive.Options{DumpJSON: true})

	snapshot := map[string]any{"total_hours": 2, "progress_status": "done"}
	if _, err := a.Persist(context.Background(), "力学", "# 力学\n", snapshot); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "力学_lesson_plan_20260309_140507.json"))
	if err != nil {
		t.Fatalf("read json dump: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json dump is not valid JSON: %v", err)
	}
	if got["progress_status"] != "done" || got["total_hours"] != float64(2) {
		t.Errorf("json dump = %v", got)
	}
}

func TestPersistUnencodableSnapshot(t *testing.T) {
	a, dir := newArchive(t, archive.Options{DumpJSON: true})

	_, err := a.Persist(context.Background(), "Physics", "# doc", map[string]any{"bad": make(chan int)})
	if !errors.Is(err, archive.ErrPersist) {
		t.Fatalf("Persist error = %v, want ErrPersist", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed persist left %d objects behind", len(entries))
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Physics", "Physics"},
		{"  Linear Algebra  ", "Linear_Algebra"},
		{"a/b\\c:d", "a_b_c_d"},
		{"../../etc", "etc"},
		{"", "course"},
		{"\t\n", "course"},
		{"高等数学", "高等数学"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := archive.SafeName(tt.in); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	a, _ := newArchive(t, archive.Options{Label: "syllabus", DumpJSON: true})

	rec := a.Record()
	if rec.Stored() != nil {
		t.Fatal("Stored before Persist is non-nil")
	}

	location, err := rec.Persist(context.Background(), "Physics", "# doc", map[string]int{"total_hours": 4})
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}

	got := rec.Stored()
	if got == nil {
		t.Fatal("Stored after Persist is nil")
	}
	if got.Key != "Physics_syllabus_20260309_140507.md" {
		t.Errorf("Key = %q", got.Key)
	}
	if got.StateKey != "Physics_syllabus_20260309_140507.json" {
		t.Errorf("StateKey = %q", got.StateKey)
	}
	if got.Location != location {
		t.Errorf("Location = %q, want %q", got.Location, location)
	}
}

func TestPersistSameSecondKeepsBothRuns(t *testing.T) {
	store, _ := newStore(t)
	a := archive.New(store, archive.Options{}, slog.New(slog.DiscardHandler))

	first, err := a.Persist(context.Background(), "Physics", "# run one\n", nil)
	if err != nil {
		t.Fatalf("first Persist: %v", err)
	}
	second, err := a.Persist(context.Background(), "Physics", "# run two\n", nil)
	if err != nil {
		t.Fatalf("second Persist: %v", err)
	}

	if first == second {
		t.Fatalf("both runs stored at %q", first)
	}

	for path, want := range map[string]string{first: "# run one\n", second: "# run two\n"} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", filepath.Base(path), data, want)
		}
	}
}

func TestPersistConcurrentRunsGetDistinctKeys(t *testing.T) {
	a, dir := newArchive(t, archive.Options{DumpJSON: true})

	const runs = 8
	keys := make([]string, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := range runs {
		wg.Go(func() {
			var stored archive.Stored
			stored, errs[i] = a.Store(context.Background(), "Physics", fmt.Sprintf("# run %d\n", i), map[string]int{"run": i})
			keys[i] = stored.Key
		})
	}
	wg.Wait()

	seen := make(map[string]bool, runs)
	for i, key := range keys {
		if errs[i] != nil {
			t.Fatalf("run %d: %v", i, errs[i])
		}
		if seen[key] {
			t.Errorf("key %q used by more than one run", key)
		}
		seen[key] = true
	}

	if _, ok := seen["Physics_lesson_plan_20260309_140507.md"]; !ok {
		t.Error("no run received the unsuffixed base name")
	}
	if _, ok := seen["Physics_lesson_plan_20260309_140507_2.md"]; !ok {
		t.Error("no run received the _2 suffix")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2*runs {
		t.Errorf("stored %d objects, want %d", len(entries), 2*runs)
	}
}

func TestStoreFailureLeavesNothingBehind(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
	}{
		{"document upload fails", ".md"},
		{"state dump upload fails", ".json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, dir := newStore(t)
			a := archive.New(
				&failingStore{System: store, suffix: tt.suffix},
				archive.Options{DumpJSON: true, Now: func() time.Time { return fixed }},
				slog.New(slog.DiscardHandler),
			)

			_, err := a.Store(context.Background(), "Physics", "# doc\n", map[string]int{"total_hours": 2})
			if !errors.Is(err, archive.ErrPersist) {
				t.Fatalf("Store error = %v, want ErrPersist", err)
			}

			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				names := make([]string, 0, len(entries))
				for _, e := range entries {
					names = append(names, e.Name())
				}
				t.Errorf("failed store left objects behind: %v", names)
			}
		})
	}
}
