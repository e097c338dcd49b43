package mnemonic

import "keynav/internal/doctree"

// Watcher re-invokes a callback whenever the observed subtree changes
// structurally. Batching granularity is owned by doctree.Document; the
// watcher adds no debouncing of its own.
type Watcher struct {
	cancel func()
}

// Start subscribes onChange to structural mutations under root. If the
// watcher is already running, the previous subscription is torn down first
// so callbacks are never duplicated.
func (w *Watcher) Start(doc *doctree.Document, root *doctree.Node, onChange func()) {
	w.Stop()
	if doc == nil || onChange == nil {
		return
	}
	w.cancel = doc.Observe(root, onChange)
}

// Stop tears down the subscription. Idempotent and safe before Start.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// Running reports whether the watcher has an active subscription.
func (w *Watcher) Running() bool { return w.cancel != nil }
