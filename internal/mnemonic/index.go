package mnemonic

import (
	"sort"
	"strings"

	"keynav/internal/doctree"
)

// Index maps a lower-cased mnemonic key to the nodes bound to it, in
// document traversal order at scan time. Every present key maps to a
// non-empty group; the order is not assumed stable across rescans.
type Index map[string][]*doctree.Node

// Rebuild scans every descendant of root carrying attr and returns a fresh
// index. Nodes with a missing or empty attribute value are skipped. Nodes
// appearing twice under the same key are kept as distinct bindings so
// repeated markup still gets correct numbered hints. Pure: the tree is not
// modified.
func Rebuild(root *doctree.Node, attr string) Index {
	ix := make(Index)
	if root == nil {
		return ix
	}
	root.Walk(func(n *doctree.Node) {
		v, ok := n.Attr(attr)
		if !ok || v == "" {
			return
		}
		key := strings.ToLower(v)
		ix[key] = append(ix[key], n)
	})
	return ix
}

// Keys returns the index's keys sorted, for stable iteration.
func (ix Index) Keys() []string {
	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Group returns the nodes bound to key. The returned slice is a copy, safe
// to hold as a snapshot across rescans.
func (ix Index) Group(key string) []*doctree.Node {
	g := ix[key]
	if len(g) == 0 {
		return nil
	}
	out := make([]*doctree.Node, len(g))
	copy(out, g)
	return out
}
