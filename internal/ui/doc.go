// Package ui hosts the demo Bubble Tea front end for mnemonic navigation:
// a document view that lays out a doctree, composites hint overlays over
// it, and translates terminal key input into the document's key-event
// stream.
package ui
