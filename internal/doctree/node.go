package doctree

// Rect is an absolute layout box in page coordinates (not viewport
// coordinates), so positions derived from it stay correct after scrolling.
type Rect struct {
	X, Y, W, H int
}

// Node is one element of the document tree. Nodes are created detached and
// become live when appended under a Document's body. The Document owns the
// tree; other packages hold references only.
type Node struct {
	Tag string

	doc       *Document
	parent    *Node
	children  []*Node
	attrs     map[string]string
	rect      Rect
	focusable bool

	handlers []handlerEntry
	nextID   int
}

// handlerEntry keeps key handlers in registration order so dispatch is
// deterministic.
type handlerEntry struct {
	id int
	fn KeyHandler
}

// NewNode creates a detached node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// Parent returns the node's parent, or nil for detached nodes and the body.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in document order.
// The returned slice is a copy.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Append adds child as the last child of n. A child already attached
// elsewhere is first detached from its old parent. Appending is a structural
// mutation and notifies observers of every subtree containing n.
func (n *Node) Append(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	child.setDocument(n.doc)
	n.children = append(n.children, child)
	if n.doc != nil {
		n.doc.notifyMutation(n)
	}
}

// Remove detaches child from n. No-op if child is not a child of n.
// Removal is a structural mutation and notifies observers.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.setDocument(nil)
			if n.doc != nil {
				n.doc.notifyMutation(n)
			}
			return
		}
	}
}

// setDocument propagates document ownership through a subtree when it is
// attached or detached.
func (n *Node) setDocument(doc *Document) {
	if n.doc == doc {
		return
	}
	if n.doc != nil && doc == nil && n.doc.focused == n {
		n.doc.focused = nil
	}
	n.doc = doc
	for _, c := range n.children {
		c.setDocument(doc)
	}
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute. Attribute changes are not structural mutations
// and do not notify observers.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// Rect returns the node's current layout box.
func (n *Node) Rect() Rect { return n.rect }

// SetRect assigns the node's layout box. Called by the host's layout pass;
// not a structural mutation.
func (n *Node) SetRect(r Rect) { n.rect = r }

// SetFocusable marks whether the node can receive focus.
func (n *Node) SetFocusable(v bool) { n.focusable = v }

// Focusable reports whether the node can receive focus.
func (n *Node) Focusable() bool { return n.focusable }

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Walk visits n and every descendant in depth-first document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// OnKey registers a key handler on the node and returns a teardown func.
// Handlers fire for events dispatched at the node or bubbling through it;
// returning true consumes the event and stops propagation.
func (n *Node) OnKey(fn KeyHandler) (cancel func()) {
	id := n.nextID
	n.nextID++
	n.handlers = append(n.handlers, handlerEntry{id: id, fn: fn})
	return func() {
		for i, h := range n.handlers {
			if h.id == id {
				n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
				return
			}
		}
	}
}
