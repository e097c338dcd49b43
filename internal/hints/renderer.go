package hints

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"keynav/internal/doctree"
)

// Phase is a hint's animation phase.
type Phase int

const (
	// PhaseEntering: fade/slide-in running.
	PhaseEntering Phase = iota
	// PhaseVisible: enter animation done.
	PhaseVisible
	// PhaseExiting: fade-out running; removed when it completes.
	PhaseExiting
)

// HintMargin is the fixed upward offset, in page rows, between a node's
// layout box and its hint.
const HintMargin = 1

// Hint is a snapshot of one overlay entity for the host to composite.
type Hint struct {
	ID      uuid.UUID
	Key     string
	Text    string // "S", or "O2" for multi-element groups
	X, Y    int    // page coordinates, already offset above the node
	Classes []string
	Phase   Phase
}

// hint is the live overlay entity behind a Hint snapshot.
type hint struct {
	Hint
	cancelTimer func()
}

// Config configures a Renderer.
type Config struct {
	Style     StyleMode
	Duration  time.Duration // enter and exit animation duration
	Scheduler Scheduler
	Logger    *zap.Logger
}

// Renderer owns the live hint set. Every render retires the previous batch
// (fade-out, then removal) before creating a fresh one, so repeated renders
// with unchanged input never accumulate entities.
type Renderer struct {
	mu       sync.Mutex
	cfg      Config
	live     map[uuid.UUID]*hint
	retiring map[uuid.UUID]*hint

	styleOnce  sync.Once
	labelStyle lipgloss.Style
}

// New creates a renderer. Zero-value Config fields get working defaults.
func New(cfg Config) *Renderer {
	if cfg.Scheduler == nil {
		cfg.Scheduler = SystemScheduler()
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 150 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Style == nil {
		cfg.Style = ClassList{}
	}
	return &Renderer{
		cfg:      cfg,
		live:     make(map[uuid.UUID]*hint),
		retiring: make(map[uuid.UUID]*hint),
	}
}

// RenderAll shows one hint per binding across every key: the bare
// upper-cased letter for single-element keys, letter plus 1-based ordinal
// otherwise.
func (r *Renderer) RenderAll(groups map[string][]*doctree.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.addGroupLocked(k, groups[k])
	}
}

// RenderGroup shows hints for a single key's group only; this is the
// disambiguation view.
func (r *Renderer) RenderGroup(key string, group []*doctree.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	r.addGroupLocked(key, group)
}

// Clear retires every visible hint: each flips to PhaseExiting, leaves the
// live set immediately, and is removed once its exit animation completes.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

// Close cancels all outstanding animation timers and drops every hint,
// mid-exit ones included. The renderer stays usable afterwards.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.live {
		h.cancelTimer()
	}
	for _, h := range r.retiring {
		h.cancelTimer()
	}
	r.live = make(map[uuid.UUID]*hint)
	r.retiring = make(map[uuid.UUID]*hint)
}

// LiveCount returns the number of live (non-exiting) hints.
func (r *Renderer) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Snapshot returns every hint still on screen, exiting ones included,
// ordered by position for stable compositing.
func (r *Renderer) Snapshot() []Hint {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Hint, 0, len(r.live)+len(r.retiring))
	for _, h := range r.live {
		out = append(out, h.Hint)
	}
	for _, h := range r.retiring {
		out = append(out, h.Hint)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// Label returns the styled text for a hint. Inline-styled hints go through
// the shared label style, resolved lazily exactly once; class-styled hints
// return the raw text for the host to style.
func (r *Renderer) Label(h Hint) string {
	if len(h.Classes) > 0 {
		return h.Text
	}
	r.styleOnce.Do(func() {
		r.labelStyle = buildLabelStyle(r.cfg.Style)
	})
	return r.labelStyle.Render(h.Text)
}

// addGroupLocked creates one entering hint per group member, positioned
// just above the member's current layout box.
func (r *Renderer) addGroupLocked(key string, group []*doctree.Node) {
	for i, n := range group {
		text := strings.ToUpper(key)
		if len(group) > 1 {
			text += strconv.Itoa(i + 1)
		}
		rect := n.Rect()
		h := &hint{Hint: Hint{
			ID:    uuid.New(),
			Key:   key,
			Text:  text,
			X:     rect.X,
			Y:     rect.Y - HintMargin,
			Phase: PhaseEntering,
		}}
		if cl, ok := r.cfg.Style.(ClassList); ok {
			h.Classes = cl.Names
		}
		id := h.ID
		h.cancelTimer = r.cfg.Scheduler.AfterFunc(r.cfg.Duration, func() {
			r.promote(id)
		})
		r.live[id] = h
		r.cfg.Logger.Debug("hint created",
			zap.String("text", text),
			zap.Int("x", h.X),
			zap.Int("y", h.Y),
		)
	}
}

// clearLocked detaches the live set so a subsequent render's hints are not
// confused with ones mid-exit.
func (r *Renderer) clearLocked() {
	for id, h := range r.live {
		h.cancelTimer()
		h.Phase = PhaseExiting
		r.retiring[id] = h
		hid := id
		h.cancelTimer = r.cfg.Scheduler.AfterFunc(r.cfg.Duration, func() {
			r.remove(hid)
		})
	}
	r.live = make(map[uuid.UUID]*hint)
}

// promote moves an entering hint to visible once its enter animation ends.
func (r *Renderer) promote(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.live[id]; ok && h.Phase == PhaseEntering {
		h.Phase = PhaseVisible
	}
}

// remove releases a retired hint once its exit animation ends.
func (r *Renderer) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.retiring, id)
}
