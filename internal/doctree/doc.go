// Package doctree provides the document-like UI tree that mnemonic
// navigation operates on.
//
// Core abstractions:
//   - Node: A tree element with attributes, a layout box, and key handlers
//   - Document: Owns the tree, the focused node, key-event dispatch
//     (bubbling), and structural-mutation observation
//   - Rect: An absolute page-coordinate layout box assigned by the host
//
// The tree is mutated only from the host event loop; Document serializes
// observer notification with the mutation that caused it.
package doctree
