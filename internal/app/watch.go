package app

import (
	"context"

	"github.com/dshills/mixedtabs/internal/watcher"
)

// Watch re-checks open documents whenever their files change on disk,
// until ctx is done. With auto-fix configured, fixed documents are saved
// back.
func (app *Application) Watch(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	src, err := app.startWatcher()
	if err != nil {
		return err
	}
	defer src.Close()

	return app.watchLoop(ctx, src)
}

func (app *Application) startWatcher() (*watcher.Debounced, error) {
	docs := app.documents.All()
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	fw, err := watcher.NewFileWatcher()
	if err != nil {
		return nil, &InitError{Component: "watcher", Err: err}
	}
	for _, doc := range docs {
		if err := fw.Add(doc.Path); err != nil {
			fw.Close()
			return nil, NewOperationError("watch", doc.Path, err)
		}
	}

	app.log.Info("watching %d files", len(docs))
	return watcher.NewDebounced(fw, app.config.Watch.Debounce.Std()), nil
}

func (app *Application) watchLoop(ctx context.Context, src watcher.Source) error {
	log := app.log.WithComponent("watcher")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-src.Events():
			if !ok {
				return nil
			}
			if err := app.handleFileEvent(ctx, ev); err != nil {
				log.Error("%v", err)
			}

		case err, ok := <-src.Errors():
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		}
	}
}

func (app *Application) handleFileEvent(ctx context.Context, ev watcher.Event) error {
	doc := app.documents.Get(ev.Path)
	if doc == nil || !ev.Op.Changed() {
		return nil
	}
	app.log.Debug("%s %s", ev.Op, ev.Path)

	if err := app.ReloadDocument(ctx, doc, false); err != nil {
		return err
	}

	// Auto-fix edits the buffer during the reload check.
	if app.autoFix != nil && doc.Engine.Dirty() {
		return app.SaveDocument(ctx, doc)
	}
	return nil
}
