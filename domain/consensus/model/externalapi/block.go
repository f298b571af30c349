package externalapi

// DomainBlockHeader represents a block header in the 80-byte layout shared
// by the secondary chain and its parent chains.
//
// Version packs the base version, the merge-mining flag and the chain id.
// Read and modify it only through the blockversion package.
type DomainBlockHeader struct {
	Version        int32
	HashPrevBlock  DomainHash
	HashMerkleRoot DomainHash
	Time           uint32
	Bits           uint32
	Nonce          uint32
	Algo           PowAlgo
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	headerClone := *header
	return &headerClone
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, DomainHash{}, DomainHash{}, 0, 0, 0, 0}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.Version != other.Version {
		return false
	}

	if !header.HashPrevBlock.Equal(&other.HashPrevBlock) {
		return false
	}

	if !header.HashMerkleRoot.Equal(&other.HashMerkleRoot) {
		return false
	}

	if header.Time != other.Time {
		return false
	}

	if header.Bits != other.Bits {
		return false
	}

	if header.Nonce != other.Nonce {
		return false
	}

	return header.Algo == other.Algo
}

// PowProof is the proof of work attached to a block. It is either a
// NativeProof or a MergeMinedProof.
type PowProof interface {
	isPowProof()
}

// NativeProof signifies that the block header carries its own proof of work
type NativeProof struct{}

func (NativeProof) isPowProof() {}

// MergeMinedProof signifies that the proof of work was done on a parent chain
// block, and carries the AuxPow linking the two
type MergeMinedProof struct {
	AuxPow *DomainAuxPow
}

func (MergeMinedProof) isPowProof() {}

// DomainBlock is a block header together with the proof of work that backs it.
// Transactions are of no interest to proof-of-work validation and are not
// carried.
type DomainBlock struct {
	Header *DomainBlockHeader
	Proof  PowProof
}

// AuxPow returns the block's AuxPow and true if the block is merge-mined
func (block *DomainBlock) AuxPow() (*DomainAuxPow, bool) {
	mergeMined, ok := block.Proof.(MergeMinedProof)
	if !ok || mergeMined.AuxPow == nil {
		return nil, false
	}
	return mergeMined.AuxPow, true
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	clone := &DomainBlock{
		Header: block.Header.Clone(),
		Proof:  NativeProof{},
	}
	if auxPow, ok := block.AuxPow(); ok {
		clone.Proof = MergeMinedProof{AuxPow: auxPow.Clone()}
	}
	return clone
}
