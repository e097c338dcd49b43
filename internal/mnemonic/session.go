package mnemonic

import (
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"keynav/internal/doctree"
	"keynav/internal/hints"
)

// Options configures a Session. The zero value is usable; unset fields are
// filled with defaults.
type Options struct {
	// AttributeName is the marker attribute selecting bindable nodes.
	AttributeName string
	// ActiveHintClass is the style class applied to hints when no explicit
	// colors are configured.
	ActiveHintClass string
	// Color and TextColor are the hint background and foreground. When
	// either is set, hints carry inline styling instead of the class.
	Color     string
	TextColor string
	// AnimationDuration is the hint fade duration.
	AnimationDuration time.Duration
	// ModifierKey arms the session while held; CancelKey aborts.
	ModifierKey string
	CancelKey   string
	// Scheduler drives animation-phase timing. Defaults to the system
	// scheduler; tests inject a manual one.
	Scheduler hints.Scheduler
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Defaults for unset Options fields.
const (
	DefaultAttributeName     = "data-accesskey"
	DefaultActiveHintClass   = "mnemonic-active"
	DefaultAnimationDuration = 150 * time.Millisecond
	DefaultModifierKey       = "alt"
	DefaultCancelKey         = "esc"
)

// withDefaults returns a copy with unset fields default-filled.
func (o Options) withDefaults() Options {
	if o.AttributeName == "" {
		o.AttributeName = DefaultAttributeName
	}
	if o.ActiveHintClass == "" {
		o.ActiveHintClass = DefaultActiveHintClass
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	if o.ModifierKey == "" {
		o.ModifierKey = DefaultModifierKey
	}
	if o.CancelKey == "" {
		o.CancelKey = DefaultCancelKey
	}
	if o.Scheduler == nil {
		o.Scheduler = hints.SystemScheduler()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// styleMode derives the renderer style variant: inline colors when
// configured, otherwise the active hint class.
func (o Options) styleMode() hints.StyleMode {
	if o.Color != "" || o.TextColor != "" {
		return hints.InlineStyle{Color: o.Color, TextColor: o.TextColor}
	}
	return hints.ClassList{Names: []string{o.ActiveHintClass}}
}

// Session owns the index, watcher, state machine, and renderer for one
// document. Sessions hold no package-level state, so independent sessions
// on distinct documents coexist without interference.
type Session struct {
	doc  *doctree.Document
	root *doctree.Node
	opts Options

	index    Index
	watcher  Watcher
	machine  *Machine
	renderer *hints.Renderer

	detachKeys func()
	started    bool
	log        *zap.Logger
}

// New creates a session over doc, watching root (nil means the whole body).
func New(doc *doctree.Document, root *doctree.Node, opts Options) *Session {
	opts = opts.withDefaults()
	if root == nil {
		root = doc.Body()
	}
	s := &Session{
		doc:   doc,
		root:  root,
		opts:  opts,
		index: make(Index),
		log:   opts.Logger,
	}
	s.renderer = hints.New(hints.Config{
		Style:     opts.styleMode(),
		Duration:  opts.AnimationDuration,
		Scheduler: opts.Scheduler,
		Logger:    opts.Logger,
	})
	s.machine = NewMachine(s.Index, s.renderer, s.triggerNode, opts.Logger)
	return s
}

// Start builds the initial index, begins watching the tree, and attaches
// the key listener. Restarting a running session first stops it so
// listeners and observers are never duplicated.
func (s *Session) Start() {
	if s.started {
		s.Stop()
	}
	s.rescan()
	s.watcher.Start(s.doc, s.root, s.rescan)
	s.detachKeys = s.doc.AddKeyListener(s.handleKey)
	s.started = true
	s.log.Debug("mnemonic session started",
		zap.String("attribute", s.opts.AttributeName),
		zap.Int("keys", len(s.index)),
	)
}

// Stop detaches the key listener and watcher, discards pending animation
// timers, and returns the machine to idle with no visible hints.
// Idempotent.
func (s *Session) Stop() {
	if s.detachKeys != nil {
		s.detachKeys()
		s.detachKeys = nil
	}
	s.watcher.Stop()
	s.machine.Reset()
	s.renderer.Close()
	s.started = false
	s.log.Debug("mnemonic session stopped")
}

// Started reports whether the session is running.
func (s *Session) Started() bool { return s.started }

// State returns the machine's current state.
func (s *Session) State() State { return s.machine.State() }

// Index returns the current letter index. The watcher keeps it fresh;
// between a mutation and its rescan a caller may observe the prior mapping.
func (s *Session) Index() Index { return s.index }

// Hints returns the renderer's hint snapshot for the host to composite.
func (s *Session) Hints() []hints.Hint { return s.renderer.Snapshot() }

// Label returns a hint's styled text; see hints.Renderer.Label.
func (s *Session) Label(h hints.Hint) string { return s.renderer.Label(h) }

// rescan replaces the index with a fresh scan. Hints already on screen are
// not re-rendered; a momentarily stale hint is acceptable and the next
// arm or letter press reads the fresh mapping.
func (s *Session) rescan() {
	s.index = Rebuild(s.root, s.opts.AttributeName)
	s.log.Debug("mnemonic index rebuilt", zap.Int("keys", len(s.index)))
}

// triggerNode resolves a binding: focus plus a synthesized activation pair.
func (s *Session) triggerNode(n *doctree.Node) {
	Trigger(s.doc, n)
}

// handleKey classifies a document key event and feeds the machine.
// Returns true when the machine consumed the event, so the host suppresses
// default handling only for keys that actually caused a transition.
func (s *Session) handleKey(ev doctree.KeyEvent) bool {
	switch ev.Kind {
	case doctree.KeyDown:
		switch ev.Key {
		case s.opts.ModifierKey:
			return s.machine.Handle(Event{Kind: ModifierDown})
		case s.opts.CancelKey:
			return s.machine.Handle(Event{Kind: CancelKey})
		}
		r, ok := singleRune(ev.Key)
		if !ok {
			// Multi-character key names (navigation keys etc.) never
			// participate in letter matching.
			return false
		}
		if unicode.IsDigit(r) {
			return s.machine.Handle(Event{Kind: DigitKey, Digit: int(r - '0')})
		}
		return s.machine.Handle(Event{Kind: LetterKey, Letter: r})
	case doctree.KeyUp:
		if ev.Key == s.opts.ModifierKey {
			return s.machine.Handle(Event{Kind: ModifierUp})
		}
	}
	return false
}

// singleRune returns the event key as a rune if it is exactly one rune.
func singleRune(key string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return 0, false
	}
	return r, true
}
