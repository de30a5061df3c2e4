// Package infobar implements the notification shown when a document mixes
// tab and space indentation.
//
// The bar is an explicit finite state value driven by Transition. A Bar
// binds that state to one engine.Document and the event bus: it runs the
// first check when the document's view gains focus, re-checks after every
// load or save, and offers Tabify, Untabify, Dismiss and DontShowAgain.
// Once disabled it never runs detection again.
package infobar

// State is the visibility of an info bar.
type State uint8

const (
	// StateHidden means no mixed indentation is being reported.
	StateHidden State = iota
	// StateShown means the bar is visible.
	StateShown
	// StateDisabled is absorbing: the user opted out or the view closed.
	StateDisabled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShown:
		return "shown"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Input is something that happens to a bar.
type Input uint8

const (
	// InputMixed is a detection run that found mixed indentation.
	InputMixed Input = iota
	// InputClean is a detection run that found consistent indentation.
	InputClean
	// InputApply is a completed tabify or untabify.
	InputApply
	// InputDismiss hides the bar until the next mixed detection.
	InputDismiss
	// InputDisable is the user choosing not to see the bar again.
	InputDisable
	// InputClose is the view or document going away.
	InputClose
)

// String returns the input name.
func (in Input) String() string {
	switch in {
	case InputMixed:
		return "mixed"
	case InputClean:
		return "clean"
	case InputApply:
		return "apply"
	case InputDismiss:
		return "dismiss"
	case InputDisable:
		return "disable"
	case InputClose:
		return "close"
	default:
		return "unknown"
	}
}

// Transition returns the state that follows s on input in.
//
// A shown bar stays shown when a later check comes back clean; only an
// explicit apply, dismiss, disable or close hides it.
func Transition(s State, in Input) State {
	if s == StateDisabled {
		return StateDisabled
	}

	switch in {
	case InputDisable, InputClose:
		return StateDisabled
	case InputMixed:
		return StateShown
	case InputApply, InputDismiss:
		return StateHidden
	}
	return s
}
