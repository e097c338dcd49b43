package mnemonic

import (
	"unicode"

	"go.uber.org/zap"

	"keynav/internal/doctree"
)

// State is the session's input state.
type State int

const (
	// StateIdle: modifier not held, no hints shown.
	StateIdle State = iota
	// StateArmed: modifier held, all keys shown as hints.
	StateArmed
	// StateDisambiguating: a duplicate letter was chosen; numbered hints for
	// its frozen group are shown and a digit press resolves.
	StateDisambiguating
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateDisambiguating:
		return "disambiguating"
	}
	return "unknown"
}

// EventKind classifies input events fed to the machine.
type EventKind int

const (
	ModifierDown EventKind = iota
	ModifierUp
	CancelKey
	LetterKey
	DigitKey
)

// Event is one keyboard event, already classified by the host.
// Letter is set for LetterKey; Digit (1–9) for DigitKey.
type Event struct {
	Kind   EventKind
	Letter rune
	Digit  int
}

// Renderer shows and clears hint overlays. Implemented by hints.Renderer;
// tests inject fakes.
type Renderer interface {
	// RenderAll shows one hint per binding across all keys.
	RenderAll(groups map[string][]*doctree.Node)
	// RenderGroup shows numbered hints for a single key's frozen group.
	RenderGroup(key string, group []*doctree.Node)
	// Clear retires all visible hints.
	Clear()
}

// Machine interprets classified key events and drives the renderer and
// trigger. Letter lookup always reads the live index at press time; only
// the disambiguation group is frozen once chosen, so numbered hints stay
// stable for the follow-up digit press.
type Machine struct {
	state     State
	activeKey string
	group     []*doctree.Node

	index    func() Index
	renderer Renderer
	trigger  func(*doctree.Node)
	log      *zap.Logger
}

// NewMachine creates a machine in StateIdle. index supplies the live index
// on demand; trigger fires a resolved node. log may be nil.
func NewMachine(index func() Index, renderer Renderer, trigger func(*doctree.Node), log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{
		state:    StateIdle,
		index:    index,
		renderer: renderer,
		trigger:  trigger,
		log:      log,
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// ActiveKey returns the key being disambiguated, or "" outside
// StateDisambiguating.
func (m *Machine) ActiveKey() string { return m.activeKey }

// Group returns the frozen disambiguation group, or nil outside
// StateDisambiguating.
func (m *Machine) Group() []*doctree.Node { return m.group }

// Handle processes one event. Returns true if the event was consumed by the
// machine, in which case the host must suppress its default handling.
// Unmatched letters are not consumed so typing keeps working when no
// binding exists.
func (m *Machine) Handle(ev Event) bool {
	switch ev.Kind {
	case ModifierDown:
		return m.handleModifierDown()
	case ModifierUp, CancelKey:
		return m.reset()
	case LetterKey:
		return m.handleLetter(ev.Letter)
	case DigitKey:
		return m.handleDigit(ev.Digit)
	}
	return false
}

func (m *Machine) handleModifierDown() bool {
	if m.state != StateIdle {
		// Auto-repeat of the held modifier; already armed.
		return true
	}
	m.setState(StateArmed)
	m.renderer.RenderAll(m.index())
	return true
}

// Reset forces the machine back to StateIdle and clears hints. Used by the
// session on teardown; key-driven exits go through Handle.
func (m *Machine) Reset() {
	m.reset()
}

// reset returns to StateIdle and clears hints. Cancel always wins: from any
// non-idle state this leaves zero live hints regardless of how the user
// exited.
func (m *Machine) reset() bool {
	if m.state == StateIdle {
		return false
	}
	m.activeKey = ""
	m.group = nil
	m.setState(StateIdle)
	m.renderer.Clear()
	return true
}

func (m *Machine) handleLetter(r rune) bool {
	if m.state != StateArmed {
		return false
	}
	key := string(unicode.ToLower(r))
	group := m.index().Group(key)
	switch len(group) {
	case 0:
		// No binding: let the key through so typing works normally.
		return false
	case 1:
		target := group[0]
		m.reset()
		m.trigger(target)
		return true
	default:
		m.activeKey = key
		m.group = group
		m.setState(StateDisambiguating)
		m.renderer.RenderGroup(key, group)
		return true
	}
}

func (m *Machine) handleDigit(d int) bool {
	if m.state != StateDisambiguating {
		return false
	}
	if d < 1 || d > len(m.group) {
		// Out-of-range pick is treated as cancel.
		m.reset()
		return true
	}
	target := m.group[d-1]
	m.reset()
	m.trigger(target)
	return true
}

func (m *Machine) setState(s State) {
	if s == m.state {
		return
	}
	m.log.Debug("mnemonic state transition",
		zap.Stringer("from", m.state),
		zap.Stringer("to", s),
	)
	m.state = s
}
