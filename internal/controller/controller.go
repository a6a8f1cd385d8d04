// Package controller holds the screen controllers of the console: the
// paginated, searchable, inline-editable list of a collection and the
// create/edit form of a single record. Controllers are plain state
// machines: operations either mutate state directly or hand back an
// Effect the event loop runs off-thread, feeding the resulting message
// back through Apply. That keeps them testable without a render harness
// and keeps every network transition explicit and named.
package controller

import "context"

// Effect is a deferred store interaction. The event loop (a Bubble Tea
// program, or a test calling it inline) executes it and routes the
// returned message back to the controller that issued it.
type Effect func(ctx context.Context) any

// lastPage returns the highest page index that still shows rows.
func lastPage(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}

	return (totalCount - 1) / pageSize
}
