// Package event provides the synchronous event bus that connects documents,
// views and info bars.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	document.loaded    - A document was read from disk
//	document.saved     - A document was written to disk
//	view.focused       - A view showing a document gained focus
//	infobar.shown      - The mixed-indentation bar became visible
//	indent.converted   - A tabify or untabify transaction completed
//
// # Wildcard Patterns
//
// Subscriptions support wildcard patterns:
//
//	document.*   - Matches document.loaded, document.saved, ...
//	infobar.**   - Matches everything under infobar
//	**           - Matches every event
//
// # Delivery
//
// Publish delivers an event to every matching subscription on the caller's
// goroutine, in priority order. A subscription created with WithOnce is
// removed before its handler runs, so a handler that publishes the same
// topic again will not see itself a second time. Handler errors and panics
// are collected and returned from Publish as a joined error.
package event
