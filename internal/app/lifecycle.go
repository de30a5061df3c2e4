package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dshills/mixedtabs/internal/engine"
	"github.com/dshills/mixedtabs/internal/event"
	"github.com/dshills/mixedtabs/internal/event/events"
	"github.com/dshills/mixedtabs/internal/event/topic"
	"github.com/dshills/mixedtabs/internal/indent"
	"github.com/dshills/mixedtabs/internal/infobar"
)

// OpenFile opens path, publishes document.loaded and attaches an info bar.
// The bar is attached after the load event, so its first check waits for
// FocusDocument. An already open document is returned as is.
func (app *Application) OpenFile(ctx context.Context, path string) (*Document, error) {
	if doc := app.documents.Get(path); doc != nil {
		return doc, nil
	}

	opts := []engine.Option{engine.WithTabWidth(app.config.Editor.TabSize)}
	if app.opts.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}

	ed, err := engine.Open(path, opts...)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	app.log.Debug("opened %s (tab width %d)", ed.Path(), ed.TabWidth())

	if err := app.publish(ctx, events.TopicDocumentLoaded, events.DocumentLoaded{
		DocumentID: ed.ID(),
		Path:       ed.Path(),
	}); err != nil {
		return nil, NewOperationError("open", path, err)
	}

	barOpts := []infobar.Option{infobar.WithLogger(app.log)}
	if !app.config.InfoBar.Enabled {
		barOpts = append(barOpts, infobar.WithDisabled())
	}
	if app.autoFix != nil {
		barOpts = append(barOpts, infobar.WithAutoFix(*app.autoFix))
	}

	bar, err := infobar.New(ed, app.bus, barOpts...)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	doc := &Document{
		Path:   ed.Path(),
		Name:   filepath.Base(ed.Path()),
		Engine: ed,
		Bar:    bar,
	}
	app.documents.add(doc)
	return doc, nil
}

// FocusDocument publishes view.focused for doc. The first focus runs the
// info bar's initial check.
func (app *Application) FocusDocument(ctx context.Context, doc *Document) error {
	return app.publish(ctx, events.TopicViewFocused, events.ViewFocused{DocumentID: doc.Engine.ID()})
}

// SaveDocument writes doc to disk and publishes document.saved.
func (app *Application) SaveDocument(ctx context.Context, doc *Document) error {
	if err := doc.Engine.Save(); err != nil {
		return NewOperationError("save", doc.Path, err)
	}
	return app.publish(ctx, events.TopicDocumentSaved, events.DocumentSaved{
		DocumentID: doc.Engine.ID(),
		Path:       doc.Path,
	})
}

// ReloadDocument re-reads doc from disk and publishes document.loaded.
// Unsaved changes are refused unless force is set.
func (app *Application) ReloadDocument(ctx context.Context, doc *Document, force bool) error {
	if doc.Engine.Dirty() && !force {
		return NewOperationError("reload", doc.Path, ErrUnsavedChanges)
	}
	if err := doc.Engine.Reload(); err != nil {
		return NewOperationError("reload", doc.Path, err)
	}
	return app.publish(ctx, events.TopicDocumentLoaded, events.DocumentLoaded{
		DocumentID: doc.Engine.ID(),
		Path:       doc.Path,
		Reload:     true,
	})
}

// CloseDocument publishes document.closed, which disables the document's
// info bar, and forgets the document. Unsaved changes are refused unless
// force is set.
func (app *Application) CloseDocument(ctx context.Context, doc *Document, force bool) error {
	if doc.Engine.Dirty() && !force {
		return NewOperationError("close", doc.Path, ErrUnsavedChanges)
	}
	if !app.documents.remove(doc) {
		return NewOperationError("close", doc.Path, ErrDocumentNotFound)
	}
	return app.publish(ctx, events.TopicDocumentClosed, events.DocumentClosed{
		DocumentID: doc.Engine.ID(),
		Path:       doc.Path,
	})
}

// Convert applies c to doc through its info bar and returns the number of
// lines changed. A disabled bar does not block an explicit conversion.
func (app *Application) Convert(ctx context.Context, doc *Document, c engine.Conversion) (int, error) {
	var (
		n   int
		err error
	)
	switch c {
	case engine.ConvertTabify:
		n, err = doc.Bar.Tabify(ctx)
	case engine.ConvertUntabify:
		n, err = doc.Bar.Untabify(ctx)
	default:
		return 0, engine.ErrUnknownConversion
	}

	if errors.Is(err, infobar.ErrDisabled) {
		n, err = doc.Engine.Convert(c)
		if err == nil {
			err = app.publish(ctx, events.TopicIndentConverted, events.IndentConverted{
				DocumentID:   doc.Engine.ID(),
				Conversion:   c.String(),
				LinesChanged: n,
			})
		}
	}
	return n, err
}

// Preview returns the replacements c would make to doc without applying them.
func (app *Application) Preview(doc *Document, c engine.Conversion) ([]indent.Replacement, error) {
	snap := doc.Engine.Snapshot()
	return c.Replacements(snap.Lines(), snap.TabWidth())
}

// Analyze reports the indentation of doc's current revision.
func (app *Application) Analyze(doc *Document) (indent.Report, error) {
	snap := doc.Engine.Snapshot()
	return indent.Analyze(snap.Lines(), snap.TabWidth())
}

func (app *Application) publish(ctx context.Context, t topic.Topic, payload any) error {
	return app.bus.Publish(ctx, event.New(t, payload, eventSource))
}
