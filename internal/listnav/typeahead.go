package listnav

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/pkg/debug"
)

// DefaultTypeaheadTimeout is how long typed characters accumulate into one
// query.
const DefaultTypeaheadTimeout = 750 * time.Millisecond

// Typeahead matches typed characters against item labels by case-folded
// prefix. Characters typed within the timeout accumulate into one query;
// repeating a single character cycles through the items starting with it.
type Typeahead struct {
	sched   loop.Scheduler
	timeout time.Duration
	fold    cases.Caser

	query     string
	anchor    int
	lastMatch int
	reset     loop.Cancel
}

// NewTypeahead creates a matcher that clears its query after timeout.
func NewTypeahead(sched loop.Scheduler, timeout time.Duration) *Typeahead {
	if timeout <= 0 {
		timeout = DefaultTypeaheadTimeout
	}
	return &Typeahead{sched: sched, timeout: timeout, fold: cases.Fold(), anchor: -1, lastMatch: -1}
}

// Query returns the characters accumulated so far.
func (t *Typeahead) Query() string {
	return t.query
}

// Active reports whether a query is in progress.
func (t *Typeahead) Active() bool {
	return t.query != ""
}

// Reset clears the query.
func (t *Typeahead) Reset() {
	t.query = ""
	if t.reset != nil {
		t.reset()
		t.reset = nil
	}
}

// Input adds r to the query and returns the index of the first enabled item
// after the anchor whose label starts with the query, wrapping around, or -1.
// The anchor is the current index when the query started. enabled decides
// which indices may match; nil falls back to the items' own disabled flags.
func (t *Typeahead) Input(r rune, current int, items []*Item, enabled func(int) bool) int {
	if enabled == nil {
		enabled = func(i int) bool { return !items[i].Disabled() }
	}
	if t.query == "" {
		t.anchor = current
	} else if repeats(t.query, r) {
		t.query = ""
		t.anchor = t.lastMatch
	}
	t.query += string(r)

	if t.reset != nil {
		t.reset()
	}
	t.reset = t.sched.AfterFunc(t.timeout, func() {
		t.reset = nil
		t.query = ""
	})

	needle := t.fold.String(t.query)
	n := len(items)
	for k := 1; k <= n; k++ {
		i := (t.anchor + k) % n
		if t.anchor < 0 {
			i = k - 1
		}
		it := items[i]
		if !enabled(i) || it.opts.Label == "" {
			continue
		}
		if strings.HasPrefix(t.fold.String(it.opts.Label), needle) {
			t.lastMatch = i
			debug.Log("listnav: typeahead %q -> %d", t.query, i)
			return i
		}
	}
	if r != ' ' {
		t.Reset()
	}
	return -1
}

// repeats reports whether query consists only of r.
func repeats(query string, r rune) bool {
	if utf8.RuneCountInString(query) == 0 {
		return false
	}
	for _, q := range query {
		if q != r {
			return false
		}
	}
	return true
}
