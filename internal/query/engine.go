package query

import "github.com/fogbound/paperscope/internal/catalog"

// PageSize is how many results NextPage hands out at a time.
const PageSize = 50

// Engine composes the predicate and sort over one catalog and owns
// the pagination cursor. Cursor state lives only here: any filter
// mutation elsewhere invalidates it, and callers must Recompute from
// scratch rather than patch incrementally.
type Engine struct {
	results []catalog.Paper
	cursor  int
}

// NewEngine returns an engine with an empty result sequence.
func NewEngine() *Engine {
	return &Engine{}
}

// Recompute evaluates the predicate over every catalog record in
// catalog order, stably sorts the survivors, and resets the page
// cursor to zero.
func (e *Engine) Recompute(c *catalog.Catalog, f FilterState) {
	matched := make([]catalog.Paper, 0, len(c.Papers))
	for i := range c.Papers {
		if Matches(&c.Papers[i], f) {
			matched = append(matched, c.Papers[i])
		}
	}
	e.results = Sort(matched, f.Sort)
	e.cursor = 0
}

// NextPage returns up to PageSize not-yet-rendered results and
// advances the cursor. Exhaustion is a normal terminal state: once
// the cursor reaches the end it returns an empty slice, never an
// error.
func (e *Engine) NextPage() []catalog.Paper {
	if e.cursor >= len(e.results) {
		return []catalog.Paper{}
	}
	end := e.cursor + PageSize
	if end > len(e.results) {
		end = len(e.results)
	}
	page := e.results[e.cursor:end]
	e.cursor = end
	return page
}

// HasMore reports whether another NextPage call would return results.
// The UI uses this to show or hide the "load more" affordance.
func (e *Engine) HasMore() bool {
	return e.cursor < len(e.results)
}

// Len returns the size of the full filtered result sequence.
func (e *Engine) Len() int {
	return len(e.results)
}

// Rendered returns how many results have been handed out so far.
func (e *Engine) Rendered() int {
	return e.cursor
}

// Results exposes the full filtered+sorted sequence. The slice is
// owned by the engine; callers must not mutate it.
func (e *Engine) Results() []catalog.Paper {
	return e.results
}
