package art

// build recursively constructs the node for a lexicographically sorted,
// duplicate-free, prefix-consistent range of keys, per spec.md §4.4:
//
//  1. compute p, the longest common prefix of the range;
//  2. strip p from every key;
//  3. split into maximal sub-ranges sharing the same leading byte after
//     stripping (an empty-remainder key becomes this node's own leaf
//     marker rather than a further sub-range);
//  4. size this node by its resulting child count and recurse into each
//     sub-range, wiring each child in under its branch byte.
//
// Phase 1 (node counting) and Phase 2 (allocation) are fused into one
// pass here: newNode's variant choice only needs the child count, which
// falls out of the same grouping pass that phase 2 needs anyway — no
// separate counting walk is needed once node storage isn't a flat,
// globally-counted arena (see art.go's package doc).
func build(keys []Key) (*node, error) {
	prefix := longestCommonPrefix(keys)

	stripped := make([]Key, len(keys))
	for i, k := range keys {
		stripped[i] = Key{Bytes: k.Bytes[len(prefix):], Leaf: k.Leaf}
	}

	var leafKey *Key
	var branchBytes []byte
	var groups [][]Key

	i := 0
	for i < len(stripped) {
		if len(stripped[i].Bytes) == 0 {
			k := stripped[i]
			leafKey = &k
			i++
			continue
		}
		b := stripped[i].Bytes[0]
		j := i
		var group []Key
		for j < len(stripped) && len(stripped[j].Bytes) > 0 && stripped[j].Bytes[0] == b {
			group = append(group, Key{Bytes: stripped[j].Bytes[1:], Leaf: stripped[j].Leaf})
			j++
		}
		branchBytes = append(branchBytes, b)
		groups = append(groups, group)
		i = j
	}

	n := newNode(prefix, len(groups))
	if leafKey != nil {
		n.hasLeaf = true
		n.leaf = leafKey.Leaf
	}

	for idx, group := range groups {
		child, err := build(group)
		if err != nil {
			return nil, err
		}
		n.insertChild(branchBytes[idx], child)
	}

	return n, nil
}

// longestCommonPrefix returns the longest byte sequence that is a prefix
// of every key in keys. keys must be non-empty.
func longestCommonPrefix(keys []Key) []byte {
	shortest := keys[0].Bytes
	for _, k := range keys[1:] {
		if len(k.Bytes) < len(shortest) {
			shortest = k.Bytes
		}
	}

	n := len(shortest)
	for _, k := range keys {
		for i := 0; i < n; i++ {
			if k.Bytes[i] != shortest[i] {
				n = i
				break
			}
		}
	}

	return append([]byte(nil), shortest[:n]...)
}
