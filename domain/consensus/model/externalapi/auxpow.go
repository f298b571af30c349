package externalapi

// DomainMerkleBranch is a path from a leaf to a merkle root: the sibling
// hashes from the bottom up, and the leaf position whose bits pick the
// concatenation order at every level.
type DomainMerkleBranch struct {
	Hashes []*DomainHash
	Index  int32
}

// Clone returns a clone of DomainMerkleBranch
func (branch DomainMerkleBranch) Clone() DomainMerkleBranch {
	return DomainMerkleBranch{
		Hashes: CloneHashes(branch.Hashes),
		Index:  branch.Index,
	}
}

// DomainAuxPow is the proof that a secondary chain block was merge-mined
// on a parent chain block.
//
// CoinbaseTx and CoinbaseBranch prove the coinbase is in ParentHeader's
// merkle root. ChainBranch proves the secondary block hash is a leaf of
// the tree whose root the coinbase commits to.
type DomainAuxPow struct {
	CoinbaseTx     *DomainTransaction
	CoinbaseBranch DomainMerkleBranch
	ChainBranch    DomainMerkleBranch
	ParentHeader   *DomainBlockHeader
}

// Clone returns a clone of DomainAuxPow
func (auxPow *DomainAuxPow) Clone() *DomainAuxPow {
	return &DomainAuxPow{
		CoinbaseTx:     auxPow.CoinbaseTx.Clone(),
		CoinbaseBranch: auxPow.CoinbaseBranch.Clone(),
		ChainBranch:    auxPow.ChainBranch.Clone(),
		ParentHeader:   auxPow.ParentHeader.Clone(),
	}
}
