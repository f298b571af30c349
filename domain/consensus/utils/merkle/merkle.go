package merkle

import (
	"math"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/hashes"
)

// nextPowerOfTwo returns the next highest power of two from a given number if
// it is not already a power of two. This is a helper function used during the
// calculation of a merkle tree.
func nextPowerOfTwo(n int) int {
	// Return the number if it's already a power of 2.
	if n&(n-1) == 0 {
		return n
	}

	// Figure out and return the next power of two.
	exponent := uint(math.Log2(float64(n))) + 1
	return 1 << exponent // 2^exponent
}

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the double-SHA256 hash of their concatenation.
func HashMerkleBranches(left, right *externalapi.DomainHash) *externalapi.DomainHash {
	writer := hashes.NewDoubleSHA256Writer()
	writer.InfallibleWrite(left.ByteSlice())
	writer.InfallibleWrite(right.ByteSlice())
	return writer.Finalize()
}

// CalculateBranchRoot folds leaf up along branch and returns the resulting
// merkle root. At every level the lowest remaining bit of index tells
// whether the running hash is the right (bit set) or the left (bit clear)
// node. An empty branch yields the leaf itself.
//
// A negative index marks a branch that was never filled in and yields the
// zero hash, which no real tree has as its root.
func CalculateBranchRoot(leaf *externalapi.DomainHash, branch []*externalapi.DomainHash,
	index int32) *externalapi.DomainHash {

	if index < 0 {
		return externalapi.NewZeroHash()
	}

	current := leaf
	for _, sibling := range branch {
		if index&1 != 0 {
			current = HashMerkleBranches(sibling, current)
		} else {
			current = HashMerkleBranches(current, sibling)
		}
		index >>= 1
	}
	return current
}

// BuildMerkleTreeStore creates a merkle tree from leaves, stores it using a
// linear array, and returns a slice of the backing array. A linear array was
// chosen as opposed to an actual tree structure since it uses about half as
// much memory. The following describes a merkle tree and how it is stored in
// a linear array.
//
// A merkle tree is a tree in which every non-leaf node is the hash of its
// children nodes. A diagram depicting how this works for five leaves
// is shown below.
//
//	         root = h12345678
//	           /             \
//	     h1234                h5555
//	    /     \              /     \
//	 h12       h34        h55       nil
//	 / \       / \       /
//	h1  h2    h3  h4    h5
//
// The above stored as a linear array is as follows:
//
//	[h1 h2 h3 h4 h5 nil nil nil h12 h34 h55 nil h1234 h5555 h12345678]
//
// As the above shows, the merkle root is always the last element in the array.
//
// The number of inputs is not always a power of two which results in a
// balanced tree structure as above. In that case, parent nodes with no
// children are also zero and parent nodes with only a single left node
// are calculated by concatenating the left node with itself before hashing.
func BuildMerkleTreeStore(leaves []*externalapi.DomainHash) []*externalapi.DomainHash {
	if len(leaves) == 0 {
		return []*externalapi.DomainHash{externalapi.NewZeroHash()}
	}

	// Calculate how many entries are required to hold the binary merkle
	// tree as a linear array and create an array of that size.
	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	merkles := make([]*externalapi.DomainHash, arraySize)

	copy(merkles, leaves)

	// Start the array offset after the last leaf and adjusted to the
	// next power of two.
	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		// When there is no left child node, the parent is nil too.
		case merkles[i] == nil:
			merkles[offset] = nil

		// When there is no right child, the parent is generated by
		// hashing the concatenation of the left child with itself.
		case merkles[i+1] == nil:
			merkles[offset] = HashMerkleBranches(merkles[i], merkles[i])

		// The normal case sets the parent node to the double sha256
		// of the concatentation of the left and right children.
		default:
			merkles[offset] = HashMerkleBranches(merkles[i], merkles[i+1])
		}
		offset++
	}

	return merkles
}

// CalculateMerkleRoot returns the root of the merkle tree over leaves
func CalculateMerkleRoot(leaves []*externalapi.DomainHash) *externalapi.DomainHash {
	merkles := BuildMerkleTreeStore(leaves)
	return merkles[len(merkles)-1]
}

// BuildBranch returns the branch proving that leaves[index] is part of
// CalculateMerkleRoot(leaves). Feeding the result back into
// CalculateBranchRoot together with index reproduces the root.
func BuildBranch(leaves []*externalapi.DomainHash, index int) []*externalapi.DomainHash {
	branch := make([]*externalapi.DomainHash, 0)
	level := externalapi.CloneHashes(leaves)
	for len(level) > 1 {
		siblingIndex := index ^ 1
		if siblingIndex >= len(level) {
			siblingIndex = index
		}
		branch = append(branch, level[siblingIndex])

		nextLevel := make([]*externalapi.DomainHash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			nextLevel = append(nextLevel, HashMerkleBranches(level[i], right))
		}
		level = nextLevel
		index /= 2
	}
	return branch
}
