package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"keynav/internal/doctree"
	"keynav/internal/mnemonic"
)

// frameMsg drives repaints while hint animations are on screen.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// AppModel is the root model of the demo: one document, one session, a
// status line showing what mnemonic activation last fired.
type AppModel struct {
	Doc     *doctree.Document
	Session *mnemonic.Session
	DocView *DocumentView
	Keys    KeyMap
	Help    help.Model

	modifier  string
	cancelKey string
	armed     bool // emulated hold of the modifier; terminals report no release
	lastFired string
	log       *zap.Logger
}

// NewAppModel builds the sample document and a started session over it.
func NewAppModel(opts mnemonic.Options, log *zap.Logger) *AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = log
	modifier := opts.ModifierKey
	if modifier == "" {
		modifier = mnemonic.DefaultModifierKey
	}
	cancelKey := opts.CancelKey
	if cancelKey == "" {
		cancelKey = mnemonic.DefaultCancelKey
	}
	attr := opts.AttributeName
	if attr == "" {
		attr = mnemonic.DefaultAttributeName
	}

	m := &AppModel{
		Keys:      DefaultKeyMap(),
		Help:      help.New(),
		modifier:  modifier,
		cancelKey: cancelKey,
		log:       log,
	}
	m.Doc = BuildSampleDocument(attr, func(label string) {
		m.lastFired = label
	})
	m.Session = mnemonic.New(m.Doc, nil, opts)
	m.Session.Start()
	m.DocView = NewDocumentView(m.Doc, m.Session)
	return m
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Help.Width = msg.Width
		return a, nil
	case frameMsg:
		if len(a.Session.Hints()) > 0 {
			return a, frameTick()
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// handleKey translates terminal input into the document's key-event
// stream. Keys the session consumes never reach quit handling, so typing
// a mnemonic letter cannot also quit the app.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.Keys.Arm) {
		if a.armed {
			a.armed = false
			a.Doc.DispatchKey(doctree.KeyEvent{Kind: doctree.KeyUp, Key: a.modifier, Target: a.Doc.Focused()})
			return a, nil
		}
		a.armed = true
		a.Doc.DispatchKey(doctree.KeyEvent{Kind: doctree.KeyDown, Key: a.modifier, Target: a.Doc.Focused()})
		return a, frameTick()
	}

	if ev, ok := a.translate(msg); ok {
		consumed := a.Doc.DispatchKey(ev)
		if a.Session.State() == mnemonic.StateIdle {
			// Resolution or cancel released the emulated hold.
			a.armed = false
		}
		if consumed {
			return a, frameTick()
		}
	}

	if !a.armed && a.Session.State() == mnemonic.StateIdle && key.Matches(msg, a.Keys.Quit) {
		a.Session.Stop()
		return a, tea.Quit
	}
	return a, nil
}

// translate maps a tea key to a document key event, or reports false for
// keys the document does not model.
func (a *appModelAdapter) translate(msg tea.KeyMsg) (doctree.KeyEvent, bool) {
	target := a.Doc.Focused()
	switch msg.Type {
	case tea.KeyEsc:
		return doctree.KeyEvent{Kind: doctree.KeyDown, Key: a.cancelKey, Target: target}, true
	case tea.KeyEnter:
		return doctree.KeyEvent{Kind: doctree.KeyDown, Key: mnemonic.ActivationKey, Target: target}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return doctree.KeyEvent{Kind: doctree.KeyDown, Key: string(msg.Runes), Target: target}, true
		}
	}
	return doctree.KeyEvent{}, false
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	out := Styles.Title.Render("keynav demo") + "\n"
	out += a.DocView.Render()
	out += "\n" + a.statusLine() + "\n"
	out += Styles.Muted.Render(a.Help.View(a.Keys))
	return out
}

// statusLine shows the session state and the last activation.
func (a *appModelAdapter) statusLine() string {
	state := a.Session.State().String()
	line := Styles.Status.Render("state: " + state)
	if a.lastFired != "" {
		line += Styles.Muted.Render("  activated: ") + Styles.Focused.Render(a.lastFired)
	}
	return line
}
