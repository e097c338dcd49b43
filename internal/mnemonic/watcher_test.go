package mnemonic

import (
	"testing"

	"keynav/internal/doctree"
)

func TestWatcher_InvokesOnChange(t *testing.T) {
	doc := doctree.NewDocument()
	var calls int
	var w Watcher
	w.Start(doc, doc.Body(), func() { calls++ })
	defer w.Stop()

	doc.Body().Append(doctree.NewNode("item"))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWatcher_OnePerBatch(t *testing.T) {
	doc := doctree.NewDocument()
	var calls int
	var w Watcher
	w.Start(doc, doc.Body(), func() { calls++ })
	defer w.Stop()

	doc.Batch(func() {
		doc.Body().Append(doctree.NewNode("item"))
		doc.Body().Append(doctree.NewNode("item"))
		doc.Body().Append(doctree.NewNode("item"))
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 per notification batch", calls)
	}
}

func TestWatcher_StopIsIdempotentAndSafeBeforeStart(t *testing.T) {
	var w Watcher
	w.Stop() // never started

	doc := doctree.NewDocument()
	var calls int
	w.Start(doc, doc.Body(), func() { calls++ })
	w.Stop()
	w.Stop()

	doc.Body().Append(doctree.NewNode("item"))
	if calls != 0 {
		t.Errorf("calls after Stop = %d, want 0", calls)
	}
	if w.Running() {
		t.Error("watcher should not be running after Stop")
	}
}

func TestWatcher_RestartDoesNotDuplicateCallbacks(t *testing.T) {
	doc := doctree.NewDocument()
	var calls int
	var w Watcher
	w.Start(doc, doc.Body(), func() { calls++ })
	w.Start(doc, doc.Body(), func() { calls++ })
	defer w.Stop()

	doc.Body().Append(doctree.NewNode("item"))
	if calls != 1 {
		t.Errorf("calls = %d, want 1 after restart", calls)
	}
}
