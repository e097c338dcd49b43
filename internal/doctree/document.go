package doctree

import "errors"

// ErrNotFocusable is returned by Focus when the target refuses focus.
var ErrNotFocusable = errors.New("doctree: node is not focusable")

// KeyEventKind distinguishes press and release events.
type KeyEventKind int

const (
	KeyDown KeyEventKind = iota
	KeyUp
)

// KeyEvent is one keyboard event flowing through the document.
// Key uses lower-case names: single runes ("a", "5"), or named keys
// ("enter", "esc", "alt", "tab").
type KeyEvent struct {
	Kind   KeyEventKind
	Key    string
	Target *Node // node the event was dispatched at; nil means the body
}

// KeyHandler receives a key event. Returning true consumes the event:
// propagation stops and the host must not apply default handling.
type KeyHandler func(KeyEvent) bool

// Document owns a tree rooted at its body node, the focused node, and the
// observer and listener registrations for the tree.
type Document struct {
	body    *Node
	focused *Node

	observers  []observerEntry
	nextObsID  int
	batchDepth int
	pending    map[int]bool // observer ids with a queued notification

	listeners []handlerEntry
	nextLisID int
}

// observerEntry is one structural-mutation subscription.
type observerEntry struct {
	id   int
	root *Node
	fn   func()
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{pending: make(map[int]bool)}
	d.body = &Node{Tag: "body", doc: d}
	return d
}

// Body returns the root node of the document tree.
func (d *Document) Body() *Node { return d.body }

// Focused returns the currently focused node, or nil.
func (d *Document) Focused() *Node { return d.focused }

// Focus moves input focus to n. Returns ErrNotFocusable for nodes that
// refuse focus, or an error if n is not attached to this document.
func (d *Document) Focus(n *Node) error {
	if n == nil || n.doc != d {
		return errors.New("doctree: focus target not attached")
	}
	if !n.focusable {
		return ErrNotFocusable
	}
	d.focused = n
	return nil
}

// Blur clears the focused node.
func (d *Document) Blur() { d.focused = nil }

// AddKeyListener registers a document-level key listener and returns a
// teardown func. Document listeners run after the target's bubble chain,
// in registration order, and see every event not already consumed.
func (d *Document) AddKeyListener(fn KeyHandler) (cancel func()) {
	id := d.nextLisID
	d.nextLisID++
	d.listeners = append(d.listeners, handlerEntry{id: id, fn: fn})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// DispatchKey delivers ev starting at its target and bubbling through
// ancestors, then to document-level listeners. A nil target means the body.
// Returns true if any handler consumed the event.
func (d *Document) DispatchKey(ev KeyEvent) bool {
	target := ev.Target
	if target == nil || target.doc != d {
		target = d.body
	}
	ev.Target = target
	for n := target; n != nil; n = n.parent {
		for _, h := range append([]handlerEntry(nil), n.handlers...) {
			if h.fn(ev) {
				return true
			}
		}
	}
	for _, l := range append([]handlerEntry(nil), d.listeners...) {
		if l.fn(ev) {
			return true
		}
	}
	return false
}

// Observe subscribes fn to structural mutations anywhere under root
// (subtree-wide, additions and removals of descendants). Returns a teardown
// func; tearing down twice is safe. Mutations inside a Batch coalesce into
// one notification per observer.
func (d *Document) Observe(root *Node, fn func()) (cancel func()) {
	if root == nil {
		root = d.body
	}
	id := d.nextObsID
	d.nextObsID++
	d.observers = append(d.observers, observerEntry{id: id, root: root, fn: fn})
	return func() {
		for i, o := range d.observers {
			if o.id == id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				delete(d.pending, id)
				return
			}
		}
	}
}

// Batch runs fn, coalescing all structural mutations it performs into a
// single notification per affected observer, delivered after fn returns.
// Batches nest; notifications fire when the outermost batch ends.
func (d *Document) Batch(fn func()) {
	d.batchDepth++
	fn()
	d.batchDepth--
	if d.batchDepth == 0 {
		d.flushPending()
	}
}

// notifyMutation records a structural change at parent and notifies
// observers whose root contains it. Inside a batch the notification is
// queued instead.
func (d *Document) notifyMutation(parent *Node) {
	for _, o := range d.observers {
		if o.root.Contains(parent) {
			d.pending[o.id] = true
		}
	}
	if d.batchDepth == 0 {
		d.flushPending()
	}
}

// flushPending delivers queued notifications. Observers registered during
// delivery are not notified for the batch that was already pending.
func (d *Document) flushPending() {
	if len(d.pending) == 0 {
		return
	}
	due := d.pending
	d.pending = make(map[int]bool)
	for _, o := range append([]observerEntry(nil), d.observers...) {
		if due[o.id] {
			o.fn()
		}
	}
}
