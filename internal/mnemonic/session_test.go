package mnemonic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"keynav/internal/doctree"
	"keynav/internal/hints"
)

// sessionFixture is an end-to-end harness: a real document, real renderer,
// manual animation clock, and a log of activations per label.
type sessionFixture struct {
	doc       *doctree.Document
	session   *Session
	sched     *hints.ManualScheduler
	activated []string
	nodes     map[string][]*doctree.Node // by attribute value, in insert order
}

func newSessionFixture(t *testing.T, keys ...string) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		doc:   doctree.NewDocument(),
		sched: hints.NewManualScheduler(),
		nodes: make(map[string][]*doctree.Node),
	}
	for _, k := range keys {
		f.addItem(k)
	}
	f.session = New(f.doc, nil, Options{Scheduler: f.sched})
	f.session.Start()
	t.Cleanup(f.session.Stop)
	return f
}

// addItem appends a focusable tagged item whose activation is recorded.
func (f *sessionFixture) addItem(key string) *doctree.Node {
	n := doctree.NewNode("item")
	n.SetAttr(DefaultAttributeName, key)
	n.SetFocusable(true)
	ordinal := len(f.nodes[key]) + 1
	label := key + string(rune('0'+ordinal))
	n.OnKey(func(ev doctree.KeyEvent) bool {
		if ev.Kind == doctree.KeyDown && ev.Key == ActivationKey {
			f.activated = append(f.activated, label)
			return true
		}
		return false
	})
	f.doc.Body().Append(n)
	f.nodes[key] = append(f.nodes[key], n)
	return n
}

func (f *sessionFixture) keyDown(key string) bool {
	return f.doc.DispatchKey(doctree.KeyEvent{Kind: doctree.KeyDown, Key: key})
}

func (f *sessionFixture) keyUp(key string) bool {
	return f.doc.DispatchKey(doctree.KeyEvent{Kind: doctree.KeyUp, Key: key})
}

// liveTexts returns the texts of non-exiting hints, in position order.
func (f *sessionFixture) liveTexts() []string {
	var out []string
	for _, h := range f.session.Hints() {
		if h.Phase != hints.PhaseExiting {
			out = append(out, h.Text)
		}
	}
	return out
}

func TestSession_ScenarioA_SingleBinding(t *testing.T) {
	f := newSessionFixture(t, "s")

	require.True(t, f.keyDown("alt"))
	require.Equal(t, StateArmed, f.session.State())
	require.Equal(t, []string{"S"}, f.liveTexts())

	require.True(t, f.keyDown("s"))
	require.Equal(t, []string{"s1"}, f.activated)
	require.Equal(t, f.nodes["s"][0], f.doc.Focused())
	require.Equal(t, StateIdle, f.session.State())
	require.Empty(t, f.liveTexts())
}

func TestSession_ScenarioB_DuplicateLetters(t *testing.T) {
	f := newSessionFixture(t, "o", "o", "o")

	f.keyDown("alt")
	// One presentation style per key, consistent with its group size:
	// numbered hints, not a bare O per element.
	require.Equal(t, []string{"O1", "O2", "O3"}, f.liveTexts())

	require.True(t, f.keyDown("o"))
	require.Equal(t, StateDisambiguating, f.session.State())
	require.Equal(t, []string{"O1", "O2", "O3"}, f.liveTexts())

	require.True(t, f.keyDown("2"))
	require.Equal(t, []string{"o2"}, f.activated)
	require.Equal(t, f.nodes["o"][1], f.doc.Focused())
	require.Equal(t, StateIdle, f.session.State())
	require.Empty(t, f.liveTexts())
}

func TestSession_ScenarioC_OutOfRangeDigit(t *testing.T) {
	f := newSessionFixture(t, "o", "o", "o")

	f.keyDown("alt")
	f.keyDown("o")
	require.True(t, f.keyDown("5"))
	require.Empty(t, f.activated)
	require.Equal(t, StateIdle, f.session.State())
	require.Empty(t, f.liveTexts())
}

func TestSession_ScenarioD_ModifierReleaseWhileDisambiguating(t *testing.T) {
	f := newSessionFixture(t, "o", "o")

	f.keyDown("alt")
	f.keyDown("o")
	require.True(t, f.keyUp("alt"))
	require.Equal(t, StateIdle, f.session.State())
	require.Empty(t, f.liveTexts())
	require.Empty(t, f.activated)
}

func TestSession_UnmatchedLetterNotConsumed(t *testing.T) {
	f := newSessionFixture(t, "s")

	f.keyDown("alt")
	require.False(t, f.keyDown("z"), "typing must work normally when no binding exists")
	require.Equal(t, StateArmed, f.session.State())
}

func TestSession_MultiCharacterKeysIgnored(t *testing.T) {
	f := newSessionFixture(t, "s")

	f.keyDown("alt")
	require.False(t, f.keyDown("left"))
	require.False(t, f.keyDown("pgdown"))
	require.Equal(t, StateArmed, f.session.State())
}

func TestSession_WatcherKeepsIndexFresh(t *testing.T) {
	f := newSessionFixture(t, "s")

	f.addItem("n")
	require.Len(t, f.session.Index().Group("n"), 1, "mutation should trigger a rescan")

	f.keyDown("alt")
	require.True(t, f.keyDown("n"))
	require.Equal(t, []string{"n1"}, f.activated)
}

func TestSession_FrozenGroupSurvivesMutations(t *testing.T) {
	f := newSessionFixture(t, "o", "o")

	f.keyDown("alt")
	f.keyDown("o")
	f.addItem("o") // rescan happens, but the active group stays frozen

	require.Equal(t, []string{"O1", "O2"}, f.liveTexts(), "numbered hints stay stable for the digit press")
	require.True(t, f.keyDown("3"), "out-of-range for the frozen group is consumed as cancel")
	require.Empty(t, f.activated)

	// A full release and re-arm reflects the mutation.
	f.keyDown("alt")
	f.keyDown("o")
	require.Equal(t, []string{"O1", "O2", "O3"}, f.liveTexts())
}

func TestSession_RenderIdempotentAcrossRearm(t *testing.T) {
	f := newSessionFixture(t, "s", "o")

	f.keyDown("alt")
	first := f.liveTexts()
	f.keyUp("alt")
	f.keyDown("alt")
	require.Equal(t, first, f.liveTexts(), "re-render must not accumulate hints")
}

func TestSession_ExitAnimationReleasesHints(t *testing.T) {
	f := newSessionFixture(t, "s")

	f.keyDown("alt")
	f.keyDown("esc")
	require.Empty(t, f.liveTexts())
	require.NotEmpty(t, f.session.Hints(), "exiting hints remain until the animation completes")

	f.sched.Advance(DefaultAnimationDuration)
	require.Empty(t, f.session.Hints())
}

func TestSession_StopDetachesListeners(t *testing.T) {
	f := newSessionFixture(t, "s")

	f.session.Stop()
	require.False(t, f.session.Started())
	require.False(t, f.keyDown("alt"), "stopped session must not consume input")
	require.Empty(t, f.session.Hints())

	// Stop is idempotent.
	f.session.Stop()
}

func TestSession_RestartDoesNotDuplicateHandling(t *testing.T) {
	f := newSessionFixture(t, "o", "o")

	f.session.Start()
	f.session.Start()
	f.keyDown("alt")
	require.Equal(t, []string{"O1", "O2"}, f.liveTexts(), "restart must not double-render")
	f.keyDown("o")
	f.keyDown("1")
	require.Equal(t, []string{"o1"}, f.activated, "restart must not double-trigger")
}

func TestSession_IndependentSessionsCoexist(t *testing.T) {
	a := newSessionFixture(t, "s")
	b := newSessionFixture(t, "s")

	a.keyDown("alt")
	require.Equal(t, StateArmed, a.session.State())
	require.Equal(t, StateIdle, b.session.State())
	require.Empty(t, b.liveTexts())
}

func TestSession_OptionDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	require.Equal(t, DefaultAttributeName, opts.AttributeName)
	require.Equal(t, DefaultActiveHintClass, opts.ActiveHintClass)
	require.Equal(t, DefaultAnimationDuration, opts.AnimationDuration)
	require.Equal(t, DefaultModifierKey, opts.ModifierKey)
	require.Equal(t, DefaultCancelKey, opts.CancelKey)
	require.NotNil(t, opts.Scheduler)
	require.NotNil(t, opts.Logger)

	custom := Options{
		AttributeName:     "data-key",
		AnimationDuration: time.Second,
	}.withDefaults()
	require.Equal(t, "data-key", custom.AttributeName)
	require.Equal(t, time.Second, custom.AnimationDuration)
}

func TestSession_StyleModeVariants(t *testing.T) {
	inline := Options{Color: "205", TextColor: "232"}.withDefaults().styleMode()
	require.IsType(t, hints.InlineStyle{}, inline)

	classes := Options{}.withDefaults().styleMode()
	cl, ok := classes.(hints.ClassList)
	require.True(t, ok)
	require.Equal(t, []string{DefaultActiveHintClass}, cl.Names)
}
