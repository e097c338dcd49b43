package mnemonic

import "keynav/internal/doctree"

// ActivationKey is the key identity synthesized when a binding resolves.
// Hosts that activate on Enter (generic click-via-Enter semantics) behave
// normally without knowing about mnemonics.
const ActivationKey = "enter"

// Trigger focuses node and synthesizes an Enter press-and-release pair at
// it, bubbling so ancestor handlers fire. Best effort: focus refusal is
// swallowed and the activation events are dispatched regardless.
func Trigger(doc *doctree.Document, node *doctree.Node) {
	if doc == nil || node == nil {
		return
	}
	_ = doc.Focus(node) // unfocusable targets still get the activation pair
	doc.DispatchKey(doctree.KeyEvent{Kind: doctree.KeyDown, Key: ActivationKey, Target: node})
	doc.DispatchKey(doctree.KeyEvent{Kind: doctree.KeyUp, Key: ActivationKey, Target: node})
}
