package events

import "github.com/dshills/mixedtabs/internal/event/topic"

// Document event topics.
const (
	// TopicDocumentLoaded is published when a document is read from disk.
	TopicDocumentLoaded topic.Topic = "document.loaded"

	// TopicDocumentSaved is published when a document is written to disk.
	TopicDocumentSaved topic.Topic = "document.saved"

	// TopicDocumentClosed is published when a document is closed.
	TopicDocumentClosed topic.Topic = "document.closed"

	// TopicViewFocused is published when a view showing a document gains focus.
	TopicViewFocused topic.Topic = "view.focused"
)

// DocumentLoaded is published when a document is read from disk.
type DocumentLoaded struct {
	// DocumentID is the unique identifier of the document.
	DocumentID string

	// Path is the absolute file path.
	Path string

	// Reload is true when the document was re-read after an external change.
	Reload bool
}

// DocumentSaved is published when a document is written to disk.
type DocumentSaved struct {
	DocumentID string
	Path       string
}

// DocumentClosed is published when a document is closed.
type DocumentClosed struct {
	DocumentID string
	Path       string
}

// ViewFocused is published when a view gains focus.
type ViewFocused struct {
	DocumentID string
}
