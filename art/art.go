// Package art implements the compile-time-known Adaptive Radix Tree
// builder described in spec.md §4.4: given a finite set of byte-string
// keys, it computes a prefix-compressed tree whose internal nodes are
// sized to the smallest of four variants (N4/N16/N48/N256) that fits
// their child count, and exposes a total Find lookup.
//
// No teacher file implements anything like this (ictiobus has no radix
// tree); the node-splitting/prefix-consumption shape is grounded on the
// general maximal-munch, prefix-driven matching idiom observed across the
// pack's lexer packages (internal/ictiobus/lex, and maleeni-style
// scanners), built fresh against spec.md §4.4's two-phase algorithm.
//
// The design notes explicitly permit either the source's flat,
// variant-partitioned arena layout or "a single tagged-variant arena...
// as long as §4.4 insertion and lookup semantics hold." This
// implementation takes the latter: each node is a Go struct carrying its
// own variant-sized storage directly (see node.go), rather than packing
// every node of a given variant into one flat slice indexed by a global
// id. Node sizing, prefix minimality, and lookup semantics are identical
// either way; see DESIGN.md for the tradeoff.
package art

import (
	"bytes"
	"sort"

	"github.com/tablewright/tablewright/lrerr"
)

// LeafID identifies one key's payload. The caller chooses each key's
// LeafID in Key.Leaf; Build stores it unchanged.
type LeafID int

// Key is one input to the builder: a byte string and the leaf id its
// lookup should resolve to.
type Key struct {
	Bytes []byte
	Leaf  LeafID
}

// Tree is an immutable, built Adaptive Radix Tree.
type Tree struct {
	root *node
}

// Build computes the tree for keys. It returns lrerr.EmptyKeySet if keys
// is empty and lrerr.DuplicateKey if the same byte string appears twice.
func Build(keys []Key) (*Tree, error) {
	if len(keys) == 0 {
		return nil, &lrerr.EmptyKeySet{}
	}

	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Bytes, sorted[j].Bytes) < 0
	})
	for i := 1; i < len(sorted); i++ {
		if bytes.Equal(sorted[i-1].Bytes, sorted[i].Bytes) {
			return nil, &lrerr.DuplicateKey{Key: string(sorted[i].Bytes)}
		}
	}

	root, err := build(sorted)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

// Find reports the leaf id associated with key, if key was part of the
// set the tree was built from. Find is total: a missing key, a proper
// prefix of a key, and an extension of a key all simply return
// (0, false) rather than failing.
func (t *Tree) Find(key []byte) (LeafID, bool) {
	n := t.root
	rest := key

	for {
		if !bytes.HasPrefix(rest, n.prefix) {
			return 0, false
		}
		rest = rest[len(n.prefix):]

		if len(rest) == 0 {
			if n.hasLeaf {
				return n.leaf, true
			}
			return 0, false
		}

		child, ok := n.findChild(rest[0])
		if !ok {
			return 0, false
		}
		n = child
		rest = rest[1:]
	}
}
