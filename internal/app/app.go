// Package app wires configuration, logging, the event bus, open documents,
// their info bars and the file watcher into one host.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/mixedtabs/internal/config"
	"github.com/dshills/mixedtabs/internal/engine"
	"github.com/dshills/mixedtabs/internal/event"
	"github.com/dshills/mixedtabs/internal/event/events"
	"github.com/dshills/mixedtabs/internal/event/topic"
	"github.com/dshills/mixedtabs/internal/logging"
)

const eventSource = "app"

// Application is the central coordinator for mixedtabs components.
type Application struct {
	mu sync.Mutex

	config    *config.Config
	log       *logging.Logger
	bus       *event.Bus
	documents *DocumentManager
	autoFix   *engine.Conversion

	subs    []*event.Subscription
	running atomic.Bool
	closed  bool

	opts Options
}

// Options configures the application.
type Options struct {
	// Config is the resolved configuration. Defaults are used when nil.
	Config *config.Config

	// Logger receives host log output. A logger built from Config is used
	// when nil.
	Logger *logging.Logger

	// ReadOnly opens files in read-only mode.
	ReadOnly bool
}

// New creates an application. The configuration is validated first.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	log := opts.Logger
	if log == nil {
		lc := logging.DefaultConfig()
		lc.Level = cfg.LogLevel()
		log = logging.New(lc)
	}

	app := &Application{
		config:    cfg,
		log:       log,
		bus:       event.NewBus(),
		documents: NewDocumentManager(),
		opts:      opts,
	}

	if cfg.InfoBar.AutoFix != "" {
		c, err := engine.ParseConversion(cfg.InfoBar.AutoFix)
		if err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
		app.autoFix = &c
	}

	if err := app.wireEventSubscriptions(); err != nil {
		return nil, &InitError{Component: "event bus", Err: err}
	}
	return app, nil
}

// wireEventSubscriptions presents info bar activity as log lines.
func (app *Application) wireEventSubscriptions() error {
	log := app.log.WithComponent("infobar")

	handlers := map[topic.Topic]event.Handler{
		events.TopicInfoBarShown: func(_ context.Context, ev event.Event) error {
			p, _ := ev.Payload.(events.InfoBarChanged)
			log.Warn("%s mixes tabs and spaces: tabify, untabify or dismiss", app.nameOf(p.DocumentID))
			return nil
		},
		events.TopicInfoBarDisabled: func(_ context.Context, ev event.Event) error {
			p, _ := ev.Payload.(events.InfoBarChanged)
			log.Debug("info bar for %s disabled (%s)", app.nameOf(p.DocumentID), p.Reason)
			return nil
		},
		events.TopicIndentConverted: func(_ context.Context, ev event.Event) error {
			p, _ := ev.Payload.(events.IndentConverted)
			log.Info("%s: %s changed %d lines", app.nameOf(p.DocumentID), p.Conversion, p.LinesChanged)
			return nil
		},
	}

	for t, h := range handlers {
		sub, err := app.bus.Subscribe(t, h, event.WithPriority(event.PriorityLow))
		if err != nil {
			return err
		}
		app.subs = append(app.subs, sub)
	}
	return nil
}

func (app *Application) nameOf(docID string) string {
	for _, d := range app.documents.All() {
		if d.Engine.ID() == docID {
			return d.Path
		}
	}
	return docID
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// EventBus returns the event bus.
func (app *Application) EventBus() *event.Bus {
	return app.bus
}

// Documents returns the document manager.
func (app *Application) Documents() *DocumentManager {
	return app.documents
}

// IsRunning returns true while Watch is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown closes every document, discarding unsaved changes, and stops
// the event bus.
func (app *Application) Shutdown(ctx context.Context) error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	var firstErr error
	for _, doc := range app.documents.All() {
		if err := app.CloseDocument(ctx, doc, true); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	app.bus.Close()
	if firstErr != nil {
		return fmt.Errorf("shutdown: %w", firstErr)
	}
	return nil
}
