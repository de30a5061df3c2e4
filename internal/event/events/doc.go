// Package events defines the topics and payloads published on the event bus.
//
// Each event type has a corresponding topic constant and payload struct:
//
//   - Document events: loading, saving and closing files
//   - View events: focus changes
//   - Info bar events: visibility changes of the mixed-indentation bar
//   - Indent events: completed tabify and untabify transactions
package events
