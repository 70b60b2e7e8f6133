// Package archive implements workflow.Persister over pkg/storage. Each lesson
// plan is stored as {course}_{label}_{timestamp}.md, optionally alongside a
// .json dump of the merged run state under the same base name. When that name
// is taken, a numeric suffix (_2, _3, ...) keeps every run's key distinct.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/JaimeStill/syllabus/pkg/formatting"
	"github.com/JaimeStill/syllabus/pkg/storage"
)

// TimestampLayout formats the run time embedded in object keys.
const TimestampLayout = "20060102_150405"

// ErrPersist indicates the lesson plan could not be stored.
var ErrPersist = errors.New("persist failed")

// Options configures an Archive.
type Options struct {
	// Label is inserted between the course name and the timestamp.
	Label string
	// DumpJSON stores the run state next to the document.
	DumpJSON bool
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Archive stores rendered lesson plans.
type Archive struct {
	store  storage.System
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	reserved map[string]struct{}
}

// New creates an Archive writing to store.
func New(store storage.System, opts Options, logger *slog.Logger) *Archive {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Label == "" {
		opts.Label = "lesson_plan"
	}
	return &Archive{
		store:    store,
		opts:     opts,
		logger:   logger.With("system", "archive"),
		reserved: make(map[string]struct{}),
	}
}

// BaseName returns the object key without extension for course at t.
func (a *Archive) BaseName(course string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s", SafeName(course), a.opts.Label, t.Format(TimestampLayout))
}

// Stored describes the objects written for one lesson plan.
type Stored struct {
	// Key is the storage key of the Markdown document.
	Key string `json:"key"`
	// StateKey is the storage key of the JSON state dump, empty when disabled.
	StateKey string `json:"state_key,omitempty"`
	// Location is the file path or URL of the Markdown document.
	Location string `json:"location"`
}

// Persist implements workflow.Persister. It returns the location of the Markdown document.
func (a *Archive) Persist(ctx context.Context, course, document string, snapshot any) (string, error) {
	stored, err := a.Store(ctx, course, document, snapshot)
	if err != nil {
		return "", err
	}
	return stored.Location, nil
}

// Store writes the document, and the state dump when enabled, under a base
// name no other run holds. The document is written first; if the dump then
// fails the document is removed, so a failed Store leaves nothing behind.
func (a *Archive) Store(ctx context.Context, course, document string, snapshot any) (Stored, error) {
	var dump bytes.Buffer
	if a.opts.DumpJSON && snapshot != nil {
		enc := json.NewEncoder(&dump)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return Stored{}, fmt.Errorf("%w: encode state: %w", ErrPersist, err)
		}
	}

	base, err := a.claim(ctx, a.BaseName(course, a.opts.Now()))
	if err != nil {
		return Stored{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	defer a.release(base)

	stored := Stored{Key: base + ".md"}

	if err := a.store.Upload(ctx, stored.Key, strings.NewReader(document), "text/markdown; charset=utf-8"); err != nil {
		a.discard(stored.Key)
		return Stored{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if dump.Len() > 0 {
		stored.StateKey = base + ".json"
		if err := a.store.Upload(ctx, stored.StateKey, &dump, "application/json"); err != nil {
			a.discard(stored.StateKey)
			a.discard(stored.Key)
			return Stored{}, fmt.Errorf("%w: state dump: %w", ErrPersist, err)
		}
	}

	stored.Location = a.store.Location(stored.Key)
	a.logger.InfoContext(ctx, "lesson plan stored",
		"location", stored.Location,
		"size", formatting.FormatBytes(int64(len(document)), 1),
		"json_dump", stored.StateKey != "",
	)

	return stored, nil
}

// claim reserves the first free base name among base, base_2, base_3, ...
// A name is free when no run in this process holds it and no document is
// stored under it.
func (a *Archive) claim(ctx context.Context, base string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for n := 1; ; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s_%d", base, n)
		}
		if _, held := a.reserved[candidate]; held {
			continue
		}

		taken, err := a.store.Exists(ctx, candidate+".md")
		if err != nil {
			return "", err
		}
		if !taken {
			a.reserved[candidate] = struct{}{}
			return candidate, nil
		}
	}
}

func (a *Archive) release(base string) {
	a.mu.Lock()
	delete(a.reserved, base)
	a.mu.Unlock()
}

// discard removes a partially written object. It runs detached from the
// request context so cleanup still happens after cancellation.
func (a *Archive) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		a.logger.Warn("remove partial object", "key", key, "error", err)
	}
}

// Recorder adapts an Archive to workflow.Persister for a single run and
// remembers what was stored.
type Recorder struct {
	archive *Archive
	stored  *Stored
}

// Record returns a Recorder writing through a.
func (a *Archive) Record() *Recorder {
	return &Recorder{archive: a}
}

// Persist implements workflow.Persister.
func (r *Recorder) Persist(ctx context.Context, course, document string, snapshot any) (string, error) {
	stored, err := r.archive.Store(ctx, course, document, snapshot)
	if err != nil {
		return "", err
	}
	r.stored = &stored
	return stored.Location, nil
}

// Stored returns what the last successful Persist call wrote, or nil.
func (r *Recorder) Stored() *Stored {
	return r.stored
}

// SafeName makes a course title usable as an object key segment.
// Path separators, control characters and surrounding whitespace are removed;
// inner whitespace becomes underscores. An empty result becomes "course".
func SafeName(course string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(course) {
		switch {
		case r == '/' || r == '\\' || r == ':':
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		return "course"
	}
	return name
}
