// Package ui provides the Bubble Tea TUI for browsing the catalog.
package ui

// searchSettled fires when the search debounce timer elapses. Gen is
// compared against the model's current generation: a timer scheduled
// before a newer keystroke carries a stale generation and is
// discarded, so only the last pending timer ever applies
// (cancel-and-replace, trailing edge only).
type searchSettled struct {
	Gen int
}

// linkCopied reports the result of copying the share link to the
// system clipboard.
type linkCopied struct {
	Err error
}
