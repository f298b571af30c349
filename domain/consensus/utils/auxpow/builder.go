package auxpow

import (
	"encoding/binary"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/blockversion"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/consensushashing"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/hashes"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/merkle"
)

// Builder assembles a parent block and the AuxPow proving it commits to a
// merge-mined block. Each Builder owns its parent block; use Clone to branch
// off a variant.
type Builder struct {
	ParentHeader       *externalapi.DomainBlockHeader
	ParentTransactions []*externalapi.DomainTransaction

	ChainBranch []*externalapi.DomainHash
	ChainIndex  int32
}

// NewBuilder returns a Builder whose parent block has the given base
// version and chain id, and no transactions
func NewBuilder(baseVersion int32, parentChainID int32, layout blockversion.Layout) *Builder {
	return &Builder{
		ParentHeader: &externalapi.DomainBlockHeader{
			Version: layout.SetBaseVersion(baseVersion, parentChainID),
		},
		ChainIndex: -1,
	}
}

// Clone returns a deep copy of b
func (b *Builder) Clone() *Builder {
	transactions := make([]*externalapi.DomainTransaction, len(b.ParentTransactions))
	for i, tx := range b.ParentTransactions {
		transactions[i] = tx.Clone()
	}
	return &Builder{
		ParentHeader:       b.ParentHeader.Clone(),
		ParentTransactions: transactions,
		ChainBranch:        externalapi.CloneHashes(b.ChainBranch),
		ChainIndex:         b.ChainIndex,
	}
}

// SetCoinbase replaces the parent block's transactions with a single
// coinbase whose signature script is script
func (b *Builder) SetCoinbase(script []byte) {
	scriptClone := make([]byte, len(script))
	copy(scriptClone, script)

	coinbase := &externalapi.DomainTransaction{
		Version: 1,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.DomainOutpoint{Index: 0xffffffff},
			SignatureScript:  scriptClone,
			Sequence:         0xffffffff,
		}},
		Outputs: []*externalapi.DomainTransactionOutput{},
	}
	b.ParentTransactions = []*externalapi.DomainTransaction{coinbase}
	b.updateMerkleRoot()
}

// AddTransaction appends tx to the parent block
func (b *Builder) AddTransaction(tx *externalapi.DomainTransaction) {
	b.ParentTransactions = append(b.ParentTransactions, tx)
	b.updateMerkleRoot()
}

func (b *Builder) transactionIDs() []*externalapi.DomainHash {
	ids := make([]*externalapi.DomainHash, len(b.ParentTransactions))
	for i, tx := range b.ParentTransactions {
		ids[i] = consensushashing.TransactionID(tx)
	}
	return ids
}

func (b *Builder) updateMerkleRoot() {
	b.ParentHeader.HashMerkleRoot = *merkle.CalculateMerkleRoot(b.transactionIDs())
}

// BuildChainMerkleBranch sets up a chain merkle branch of the given height
// placing auxBlockHash at index, and returns the resulting root in the byte
// order coinbase scripts commit to. The sibling hashes are arbitrary
// fillers.
func (b *Builder) BuildChainMerkleBranch(auxBlockHash *externalapi.DomainHash, height uint32, index int32) []byte {
	b.ChainIndex = index
	b.ChainBranch = make([]*externalapi.DomainHash, height)
	for i := range b.ChainBranch {
		b.ChainBranch[i] = hashes.FromUint64(uint64(i))
	}

	root := merkle.CalculateBranchRoot(auxBlockHash, b.ChainBranch, index)
	return hashes.ReversedBytes(root)
}

// Build returns the AuxPow proving the parent block's coinbase
func (b *Builder) Build() *externalapi.DomainAuxPow {
	return b.BuildWithTransaction(0)
}

// BuildWithTransaction returns an AuxPow whose commitment transaction is the
// parent block's transaction at txIndex. Only txIndex 0 yields a valid
// proof.
func (b *Builder) BuildWithTransaction(txIndex int) *externalapi.DomainAuxPow {
	coinbaseBranch := merkle.BuildBranch(b.transactionIDs(), txIndex)
	return &externalapi.DomainAuxPow{
		CoinbaseTx: b.ParentTransactions[txIndex].Clone(),
		CoinbaseBranch: externalapi.DomainMerkleBranch{
			Hashes: coinbaseBranch,
			Index:  int32(txIndex),
		},
		ChainBranch: externalapi.DomainMerkleBranch{
			Hashes: externalapi.CloneHashes(b.ChainBranch),
			Index:  b.ChainIndex,
		},
		ParentHeader: b.ParentHeader.Clone(),
	}
}

// BuildCoinbaseData returns the data a parent coinbase carries to commit to
// rootBytes: the optional merged mining header, the root, the tree size
// 2^height and the nonce
func BuildCoinbaseData(withHeader bool, rootBytes []byte, height uint32, nonce uint32) []byte {
	data := make([]byte, 0, len(MergedMiningHeader)+len(rootBytes)+8)
	if withHeader {
		data = append(data, MergedMiningHeader...)
	}
	data = append(data, rootBytes...)

	var sizeAndNonce [8]byte
	binary.LittleEndian.PutUint32(sizeAndNonce[:4], uint32(1)<<height)
	binary.LittleEndian.PutUint32(sizeAndNonce[4:], nonce)
	return append(data, sizeAndNonce[:]...)
}

// PushData appends to script the shortest push of data
func PushData(script []byte, data []byte) []byte {
	const (
		opPushData1 = 0x4c
		opPushData2 = 0x4d
	)

	switch {
	case len(data) < opPushData1:
		script = append(script, byte(len(data)))
	case len(data) <= 0xff:
		script = append(script, opPushData1, byte(len(data)))
	default:
		script = append(script, opPushData2, byte(len(data)), byte(len(data)>>8))
	}
	return append(script, data...)
}

// SetAuxPow attaches auxPow to block and sets the version flag accordingly.
// A nil auxPow makes the block natively mined.
func SetAuxPow(block *externalapi.DomainBlock, auxPow *externalapi.DomainAuxPow, layout blockversion.Layout) {
	if auxPow == nil {
		block.Proof = externalapi.NativeProof{}
		block.Header.Version = layout.WithAuxpowFlag(block.Header.Version, false)
		return
	}
	block.Proof = externalapi.MergeMinedProof{AuxPow: auxPow}
	block.Header.Version = layout.WithAuxpowFlag(block.Header.Version, true)
}
