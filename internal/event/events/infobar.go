package events

import "github.com/dshills/mixedtabs/internal/event/topic"

// Info bar and indentation event topics.
const (
	// TopicInfoBarShown is published when the mixed-indentation bar appears.
	TopicInfoBarShown topic.Topic = "infobar.shown"

	// TopicInfoBarHidden is published when the bar is dismissed or a fix was applied.
	TopicInfoBarHidden topic.Topic = "infobar.hidden"

	// TopicInfoBarDisabled is published when the bar is permanently disabled.
	TopicInfoBarDisabled topic.Topic = "infobar.disabled"

	// TopicIndentConverted is published after a tabify or untabify transaction.
	TopicIndentConverted topic.Topic = "indent.converted"
)

// InfoBarChanged is the payload of every infobar.* event.
type InfoBarChanged struct {
	// DocumentID is the document the bar belongs to.
	DocumentID string

	// From is the state before the transition.
	From string

	// To is the state after the transition.
	To string

	// Reason is the input that caused the transition.
	Reason string
}

// IndentConverted is published after a conversion transaction completes.
type IndentConverted struct {
	DocumentID string

	// Conversion is "Tabify" or "Untabify".
	Conversion string

	// LinesChanged is the number of lines rewritten.
	LinesChanged int
}
