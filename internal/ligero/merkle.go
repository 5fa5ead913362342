// Package ligero implements the Ligero-style polynomial commitment of
// spec.md §4.7: a witness tableau Reed-Solomon encoded row-wise, columns
// committed via a Merkle tree, linear and quadratic claims proven by
// random linear combination plus a random subset of column openings.
//
// The column-hash Merkle tree here is grounded structurally (not literally)
// on the teacher's sparse Merkle tree (state/merkleproof.go, deleted along
// with the rest of the ballot-state machinery as out of scope for this
// spec): same "leaf hash, sibling path, root" shape, reimplemented as a
// dense binary tree over a fixed power-of-two leaf count, which is what a
// column-commitment scheme over a rectangular tableau needs instead of a
// sparse key/value structure.
package ligero

import "crypto/sha256"

// MerkleTree is a dense binary hash tree over a power-of-two number of
// leaves, used to commit to the tableau's encoded columns.
type MerkleTree struct {
	levels [][][32]byte // levels[0] = leaves, levels[len-1] = {root}
}

func hashLeaf(data []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{0x00})
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashNode(l, r [32]byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{0x01})
	h.Write(l[:])
	h.Write(r[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// BuildMerkleTree commits to leaves (already-hashed column digests are not
// required; raw leaf bytes are hashed here). len(leaves) must be a power of
// two.
func BuildMerkleTree(leafData [][]byte) *MerkleTree {
	n := len(leafData)
	if n == 0 || (n&(n-1)) != 0 {
		panic("ligero: Merkle tree requires a nonzero power-of-two leaf count")
	}
	leaves := make([][32]byte, n)
	for i, d := range leafData {
		leaves[i] = hashLeaf(d)
	}
	levels := [][][32]byte{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([][32]byte, len(cur)/2)
		for i := range next {
			next[i] = hashNode(cur[2*i], cur[2*i+1])
		}
		levels = append(levels, next)
		cur = next
	}
	return &MerkleTree{levels: levels}
}

// Root returns the tree's committed root.
func (t *MerkleTree) Root() [32]byte {
	return t.levels[len(t.levels)-1][0]
}

// Path is an authentication path: the sibling digest at each level from
// leaf to root, run-length-encodable by the caller when many paths share a
// prefix (spec.md §6: "run-length-encoded sequence of sibling digests").
type Path struct {
	Siblings [][32]byte
}

// Open returns the authentication path for leaf index idx.
func (t *MerkleTree) Open(idx int) Path {
	var p Path
	for level := 0; level < len(t.levels)-1; level++ {
		sibling := idx ^ 1
		p.Siblings = append(p.Siblings, t.levels[level][sibling])
		idx >>= 1
	}
	return p
}

// VerifyPath checks that leafData authenticates to root at position idx
// among nLeaves total leaves, given path.
func VerifyPath(root [32]byte, nLeaves int, idx int, leafData []byte, path Path) bool {
	depth := 0
	for (1 << depth) < nLeaves {
		depth++
	}
	if len(path.Siblings) != depth {
		return false
	}
	cur := hashLeaf(leafData)
	for level := 0; level < depth; level++ {
		sib := path.Siblings[level]
		if idx&1 == 0 {
			cur = hashNode(cur, sib)
		} else {
			cur = hashNode(sib, cur)
		}
		idx >>= 1
	}
	return cur == root
}
