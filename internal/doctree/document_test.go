package doctree

import "testing"

func buildTree(doc *Document) (section, item *Node) {
	section = NewNode("section")
	item = NewNode("item")
	doc.Body().Append(section)
	section.Append(item)
	return section, item
}

func TestObserve_NotifiesOnStructuralChange(t *testing.T) {
	doc := NewDocument()
	section, _ := buildTree(doc)

	var calls int
	cancel := doc.Observe(doc.Body(), func() { calls++ })
	defer cancel()

	section.Append(NewNode("item"))
	if calls != 1 {
		t.Fatalf("append: calls = %d, want 1", calls)
	}

	section.Remove(section.Children()[0])
	if calls != 2 {
		t.Fatalf("remove: calls = %d, want 2", calls)
	}
}

func TestObserve_AttributeChangesAreNotStructural(t *testing.T) {
	doc := NewDocument()
	_, item := buildTree(doc)

	var calls int
	cancel := doc.Observe(doc.Body(), func() { calls++ })
	defer cancel()

	item.SetAttr("data-accesskey", "x")
	item.RemoveAttr("data-accesskey")
	item.SetRect(Rect{X: 1, Y: 2})
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestObserve_BatchCoalesces(t *testing.T) {
	doc := NewDocument()
	section, _ := buildTree(doc)

	var calls int
	cancel := doc.Observe(doc.Body(), func() { calls++ })
	defer cancel()

	doc.Batch(func() {
		for i := 0; i < 5; i++ {
			section.Append(NewNode("item"))
		}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 per batch", calls)
	}
}

func TestObserve_SubtreeScoping(t *testing.T) {
	doc := NewDocument()
	left := NewNode("section")
	right := NewNode("section")
	doc.Body().Append(left)
	doc.Body().Append(right)

	var calls int
	cancel := doc.Observe(left, func() { calls++ })
	defer cancel()

	right.Append(NewNode("item"))
	if calls != 0 {
		t.Fatalf("mutation outside observed subtree notified: calls = %d", calls)
	}
	left.Append(NewNode("item"))
	if calls != 1 {
		t.Fatalf("mutation inside observed subtree: calls = %d, want 1", calls)
	}
}

func TestObserve_CancelIsIdempotent(t *testing.T) {
	doc := NewDocument()
	section, _ := buildTree(doc)

	var calls int
	cancel := doc.Observe(doc.Body(), func() { calls++ })
	cancel()
	cancel()

	section.Append(NewNode("item"))
	if calls != 0 {
		t.Errorf("calls after cancel = %d, want 0", calls)
	}
}

func TestDispatchKey_BubblesToAncestors(t *testing.T) {
	doc := NewDocument()
	section, item := buildTree(doc)

	var order []string
	item.OnKey(func(ev KeyEvent) bool {
		order = append(order, "item")
		return false
	})
	section.OnKey(func(ev KeyEvent) bool {
		order = append(order, "section")
		return false
	})
	doc.AddKeyListener(func(ev KeyEvent) bool {
		order = append(order, "document")
		return false
	})

	consumed := doc.DispatchKey(KeyEvent{Kind: KeyDown, Key: "enter", Target: item})
	if consumed {
		t.Error("no handler consumed; DispatchKey should return false")
	}
	want := []string{"item", "section", "document"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestDispatchKey_ConsumptionStopsPropagation(t *testing.T) {
	doc := NewDocument()
	section, item := buildTree(doc)

	item.OnKey(func(ev KeyEvent) bool { return true })
	var sectionSaw bool
	section.OnKey(func(ev KeyEvent) bool {
		sectionSaw = true
		return false
	})

	if !doc.DispatchKey(KeyEvent{Kind: KeyDown, Key: "enter", Target: item}) {
		t.Error("expected consumed")
	}
	if sectionSaw {
		t.Error("consumed event should not bubble further")
	}
}

func TestDispatchKey_NilTargetMeansBody(t *testing.T) {
	doc := NewDocument()
	var got *Node
	doc.AddKeyListener(func(ev KeyEvent) bool {
		got = ev.Target
		return false
	})
	doc.DispatchKey(KeyEvent{Kind: KeyDown, Key: "a"})
	if got != doc.Body() {
		t.Error("nil target should resolve to the body")
	}
}

func TestFocus(t *testing.T) {
	doc := NewDocument()
	_, item := buildTree(doc)

	if err := doc.Focus(item); err == nil {
		t.Error("focusing a non-focusable node should error")
	}
	item.SetFocusable(true)
	if err := doc.Focus(item); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if doc.Focused() != item {
		t.Error("item should be focused")
	}

	detached := NewNode("item")
	detached.SetFocusable(true)
	if err := doc.Focus(detached); err == nil {
		t.Error("focusing a detached node should error")
	}
	if doc.Focused() != item {
		t.Error("failed focus must not change the focused node")
	}
}

func TestRemove_DetachedSubtreeLosesFocusAndDocument(t *testing.T) {
	doc := NewDocument()
	section, item := buildTree(doc)
	item.SetFocusable(true)
	if err := doc.Focus(item); err != nil {
		t.Fatalf("Focus: %v", err)
	}

	doc.Body().Remove(section)
	if doc.Focused() != nil {
		t.Error("focus should clear when the focused node is detached")
	}
}

func TestOnKey_CancelRemovesHandler(t *testing.T) {
	doc := NewDocument()
	_, item := buildTree(doc)

	var calls int
	cancel := item.OnKey(func(ev KeyEvent) bool {
		calls++
		return false
	})
	doc.DispatchKey(KeyEvent{Kind: KeyDown, Key: "a", Target: item})
	cancel()
	cancel()
	doc.DispatchKey(KeyEvent{Kind: KeyDown, Key: "a", Target: item})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
