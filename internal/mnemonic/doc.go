// Package mnemonic implements letter-hint navigation over a doctree
// document: an index from mnemonic letters to tagged nodes, a watcher that
// keeps the index fresh across tree mutations, the input state machine that
// arms, disambiguates, and triggers, and the Session that owns their
// lifecycle.
//
// Everything here runs on the host event loop; the package adds no
// parallelism of its own.
package mnemonic
