package infobar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/mixedtabs/internal/engine"
	"github.com/dshills/mixedtabs/internal/event"
	"github.com/dshills/mixedtabs/internal/event/events"
	"github.com/dshills/mixedtabs/internal/event/topic"
	"github.com/dshills/mixedtabs/internal/logging"
)

// ErrDisabled is returned by actions on a disabled bar.
var ErrDisabled = errors.New("info bar is disabled")

const eventSource = "infobar"

// Bus is the part of the event bus a Bar uses.
type Bus interface {
	Publish(ctx context.Context, ev event.Event) error
	Subscribe(pattern topic.Topic, handler event.Handler, opts ...event.SubscriptionOption) (*event.Subscription, error)
	Unsubscribe(sub *event.Subscription) error
}

// Bar is the mixed-indentation bar for one document.
type Bar struct {
	mu     sync.Mutex
	state  State
	checks int
	subs   []*event.Subscription

	doc     *engine.Document
	bus     Bus
	log     *logging.Logger
	autoFix *engine.Conversion
}

// Option configures a Bar.
type Option func(*Bar)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(b *Bar) {
		b.log = l
	}
}

// WithAutoFix applies c instead of showing the bar.
func WithAutoFix(c engine.Conversion) Option {
	return func(b *Bar) {
		b.autoFix = &c
	}
}

// WithDisabled creates the bar already disabled.
func WithDisabled() Option {
	return func(b *Bar) {
		b.state = StateDisabled
	}
}

// New attaches a bar to doc. The first check runs when a view.focused event
// for doc arrives; document.loaded and document.saved re-run it, and
// document.closed disables the bar.
func New(doc *engine.Document, bus Bus, opts ...Option) (*Bar, error) {
	b := &Bar{
		doc: doc,
		bus: bus,
		log: logging.Null(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.WithComponent("infobar").WithField("doc", doc.ID())

	if b.state == StateDisabled {
		return b, nil
	}

	forDoc := event.WithFilter(b.isMine)
	check := func(ctx context.Context, _ event.Event) error {
		return b.Check(ctx)
	}
	closed := func(ctx context.Context, _ event.Event) error {
		return b.Close(ctx)
	}

	specs := []struct {
		pattern topic.Topic
		handler event.Handler
		opts    []event.SubscriptionOption
	}{
		{events.TopicViewFocused, check, []event.SubscriptionOption{forDoc, event.WithOnce()}},
		{events.TopicDocumentLoaded, check, []event.SubscriptionOption{forDoc}},
		{events.TopicDocumentSaved, check, []event.SubscriptionOption{forDoc}},
		{events.TopicDocumentClosed, closed, []event.SubscriptionOption{forDoc}},
	}

	for _, s := range specs {
		sub, err := bus.Subscribe(s.pattern, s.handler, s.opts...)
		if err != nil {
			b.detach()
			return nil, fmt.Errorf("subscribing to %s: %w", s.pattern, err)
		}
		b.subs = append(b.subs, sub)
	}
	return b, nil
}

func (b *Bar) isMine(ev event.Event) bool {
	switch p := ev.Payload.(type) {
	case events.ViewFocused:
		return p.DocumentID == b.doc.ID()
	case events.DocumentLoaded:
		return p.DocumentID == b.doc.ID()
	case events.DocumentSaved:
		return p.DocumentID == b.doc.ID()
	case events.DocumentClosed:
		return p.DocumentID == b.doc.ID()
	default:
		return false
	}
}

// State returns the current state.
func (b *Bar) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Checks returns how many detection runs the bar has performed.
func (b *Bar) Checks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.checks
}

// Document returns the document the bar is attached to.
func (b *Bar) Document() *engine.Document {
	return b.doc
}

// Check runs detection on the document's current snapshot. A disabled bar
// does nothing.
func (b *Bar) Check(ctx context.Context) error {
	b.mu.Lock()
	if b.state == StateDisabled {
		b.mu.Unlock()
		return nil
	}
	b.checks++
	b.mu.Unlock()

	mixed, err := b.doc.Detect()
	if err != nil {
		return fmt.Errorf("checking indentation: %w", err)
	}

	if !mixed {
		_, _, err := b.fire(ctx, InputClean)
		return err
	}

	if b.autoFix != nil {
		b.log.Info("mixed tabs and spaces in %s, applying %s", b.describe(), *b.autoFix)
		_, err := b.apply(ctx, *b.autoFix)
		return err
	}

	from, to, err := b.fire(ctx, InputMixed)
	if from != to {
		b.log.Info("mixed tabs and spaces in %s", b.describe())
	}
	return err
}

// Tabify converts the document's indentation to tabs and closes the bar.
// It returns the number of lines changed.
func (b *Bar) Tabify(ctx context.Context) (int, error) {
	return b.apply(ctx, engine.ConvertTabify)
}

// Untabify converts the document's indentation to spaces and closes the bar.
// It returns the number of lines changed.
func (b *Bar) Untabify(ctx context.Context) (int, error) {
	return b.apply(ctx, engine.ConvertUntabify)
}

// apply runs c as one undoable transaction. If it fails the bar keeps its
// state and the document is unchanged.
func (b *Bar) apply(ctx context.Context, c engine.Conversion) (int, error) {
	if b.State() == StateDisabled {
		return 0, ErrDisabled
	}

	n, err := b.doc.Convert(c)
	if err != nil {
		b.log.Error("%s failed: %v", c, err)
		return 0, fmt.Errorf("%s: %w", c, err)
	}
	b.log.Debug("%s changed %d lines", c, n)

	errs := []error{b.publish(ctx, events.TopicIndentConverted, events.IndentConverted{
		DocumentID:   b.doc.ID(),
		Conversion:   c.String(),
		LinesChanged: n,
	})}

	_, _, err = b.fire(ctx, InputApply)
	errs = append(errs, err)
	return n, errors.Join(errs...)
}

// Dismiss hides the bar until detection finds mixed indentation again.
func (b *Bar) Dismiss(ctx context.Context) error {
	_, _, err := b.fire(ctx, InputDismiss)
	return err
}

// DontShowAgain disables the bar for the rest of the document's lifetime.
func (b *Bar) DontShowAgain(ctx context.Context) error {
	_, _, err := b.fire(ctx, InputDisable)
	return err
}

// Close disables the bar because its view or document went away.
func (b *Bar) Close(ctx context.Context) error {
	_, _, err := b.fire(ctx, InputClose)
	return err
}

// fire applies in and publishes the matching infobar event if the state
// changed. Subscriptions are dropped on the way into StateDisabled.
func (b *Bar) fire(ctx context.Context, in Input) (State, State, error) {
	b.mu.Lock()
	from := b.state
	to := Transition(from, in)
	b.state = to
	b.mu.Unlock()

	if from == to {
		return from, to, nil
	}

	b.log.Debug("%s -> %s on %s", from, to, in)

	var t topic.Topic
	switch to {
	case StateShown:
		t = events.TopicInfoBarShown
	case StateHidden:
		t = events.TopicInfoBarHidden
	case StateDisabled:
		b.detach()
		t = events.TopicInfoBarDisabled
	}

	err := b.publish(ctx, t, events.InfoBarChanged{
		DocumentID: b.doc.ID(),
		From:       from.String(),
		To:         to.String(),
		Reason:     in.String(),
	})
	return from, to, err
}

func (b *Bar) detach() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		// A one-shot subscription may already be gone.
		if err := b.bus.Unsubscribe(sub); err != nil && !errors.Is(err, event.ErrSubscriptionNotFound) {
			b.log.Warn("unsubscribe %s: %v", sub.Topic(), err)
		}
	}
}

func (b *Bar) publish(ctx context.Context, t topic.Topic, payload any) error {
	return b.bus.Publish(ctx, event.New(t, payload, eventSource))
}

func (b *Bar) describe() string {
	if p := b.doc.Path(); p != "" {
		return p
	}
	return b.doc.ID()
}
