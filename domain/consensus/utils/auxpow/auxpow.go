package auxpow

import (
	"github.com/globaltoken/globaltoken-core-wallet/domain/chainconfig"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/ruleerrors"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/consensushashing"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/hashes"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/merkle"
	"github.com/pkg/errors"
)

// MaxChainMerkleBranchLength is the deepest chain merkle branch an AuxPow may
// carry, limiting a parent block to 2^30 merge-mined chains
const MaxChainMerkleBranchLength = 30

// Verify checks that auxPow commits the parent block's proof of work to the
// block whose hash is auxBlockHash on the chain identified by chainID. It
// doesn't check the parent's proof of work itself.
//
// A nil error means the proof is accepted. Any other result is a rule error
// wrapping one of the ruleerrors.ErrAuxPow* values.
func Verify(auxPow *externalapi.DomainAuxPow, auxBlockHash *externalapi.DomainHash, chainID int32,
	params *chainconfig.Params) error {

	if auxPow == nil || auxPow.CoinbaseTx == nil {
		return errors.Wrapf(ruleerrors.ErrAuxPowMissingCoinbase, "the AuxPow has no coinbase transaction")
	}
	if auxPow.ParentHeader == nil {
		return errors.Wrapf(ruleerrors.ErrAuxPowMissingParentHeader, "the AuxPow has no parent block header")
	}

	if auxPow.CoinbaseBranch.Index != 0 {
		return errors.Wrapf(ruleerrors.ErrAuxPowNotCoinbase,
			"the AuxPow transaction is at index %d of the parent block", auxPow.CoinbaseBranch.Index)
	}

	parentChainID := params.VersionLayout.ChainID(auxPow.ParentHeader.Version)
	if params.StrictChainID && parentChainID == chainID {
		return errors.Wrapf(ruleerrors.ErrAuxPowSelfParent,
			"the parent block has our chain id %d", chainID)
	}

	chainBranchLength := len(auxPow.ChainBranch.Hashes)
	if chainBranchLength > MaxChainMerkleBranchLength {
		return errors.Wrapf(ruleerrors.ErrAuxPowChainBranchTooLong,
			"the chain merkle branch has length %d, the maximum is %d",
			chainBranchLength, MaxChainMerkleBranchLength)
	}

	chainRoot := merkle.CalculateBranchRoot(auxBlockHash, auxPow.ChainBranch.Hashes, auxPow.ChainBranch.Index)
	// Coinbase scripts carry the root in display order.
	chainRootBytes := hashes.ReversedBytes(chainRoot)

	coinbaseID := consensushashing.TransactionID(auxPow.CoinbaseTx)
	parentMerkleRoot := merkle.CalculateBranchRoot(coinbaseID, auxPow.CoinbaseBranch.Hashes,
		auxPow.CoinbaseBranch.Index)
	if !parentMerkleRoot.Equal(&auxPow.ParentHeader.HashMerkleRoot) {
		return errors.Wrapf(ruleerrors.ErrAuxPowBadParentMerkleRoot,
			"the coinbase branch leads to %s, while the parent merkle root is %s",
			parentMerkleRoot, auxPow.ParentHeader.HashMerkleRoot)
	}

	if len(auxPow.CoinbaseTx.Inputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrAuxPowMissingCoinbase, "the AuxPow coinbase has no inputs")
	}
	script := auxPow.CoinbaseTx.Inputs[0].SignatureScript

	height := uint32(chainBranchLength)
	commitment, err := FindCommitment(script, chainRootBytes, height)
	if err != nil {
		return err
	}

	expectedIndex := ExpectedIndex(commitment.Nonce, chainID, height)
	if auxPow.ChainBranch.Index != expectedIndex {
		return errors.Wrapf(ruleerrors.ErrAuxPowWrongIndex,
			"the chain merkle branch index is %d, but nonce %d and chain id %d require %d",
			auxPow.ChainBranch.Index, commitment.Nonce, chainID, expectedIndex)
	}

	log.Tracef("AuxPow for %s accepted: parent merkle root %s, chain slot %d of %d",
		auxBlockHash, parentMerkleRoot, expectedIndex, commitment.Size)
	return nil
}

// Check is Verify reduced to whether the proof is accepted. The reason for a
// rejection is logged at debug level.
func Check(auxPow *externalapi.DomainAuxPow, auxBlockHash *externalapi.DomainHash, chainID int32,
	params *chainconfig.Params) bool {

	err := Verify(auxPow, auxBlockHash, chainID, params)
	if err != nil {
		log.Debugf("AuxPow for %s rejected: %s", auxBlockHash, err)
		return false
	}
	return true
}
