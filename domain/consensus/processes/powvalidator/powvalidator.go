package powvalidator

import (
	"math/big"

	"github.com/globaltoken/globaltoken-core-wallet/domain/chainconfig"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/pow"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/ruleerrors"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/auxpow"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/consensushashing"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/math"
	"github.com/pkg/errors"
)

// powValidator holds only immutable network parameters, so a single
// instance may validate blocks from many goroutines.
type powValidator struct {
	params *chainconfig.Params
}

// New instantiates a new PowValidator for the network described by params
func New(params *chainconfig.Params) model.PowValidator {
	return &powValidator{
		params: params,
	}
}

// ValidateProofOfWork returns nil if block carries an acceptable proof of
// work, and a rule error describing the first violated rule otherwise
func (v *powValidator) ValidateProofOfWork(block *externalapi.DomainBlock) error {
	header := block.Header
	layout := v.params.VersionLayout

	target, err := v.target(header)
	if err != nil {
		return err
	}

	if !layout.IsLegacy(header.Version) && v.params.StrictChainID {
		chainID := layout.ChainID(header.Version)
		if chainID != v.params.AuxpowChainID {
			return errors.Wrapf(ruleerrors.ErrWrongChainID,
				"block version %#08x has chain id %d, expected %d",
				uint32(header.Version), chainID, v.params.AuxpowChainID)
		}
	}

	auxPow, hasAuxPow := block.AuxPow()
	if !layout.IsAuxpow(header.Version) {
		if hasAuxPow {
			return errors.Wrapf(ruleerrors.ErrUnexpectedAuxPow,
				"block version %#08x doesn't claim merge-mining but an AuxPow is attached",
				uint32(header.Version))
		}
		valid, err := pow.CheckProofOfWorkWithTarget(header, target)
		return proofOfWorkResult(header, header.Algo, target, valid, err)
	}

	if !hasAuxPow {
		return errors.Wrapf(ruleerrors.ErrMissingAuxPow,
			"block version %#08x claims merge-mining but no AuxPow is attached", uint32(header.Version))
	}

	blockHash := consensushashing.HeaderHash(header)
	err = auxpow.Verify(auxPow, blockHash, v.params.AuxpowChainID, v.params)
	if err != nil {
		return err
	}

	// The parent block is hashed under our algorithm and has to meet our target.
	valid, err := pow.CheckProofOfWorkWithTargetAndAlgo(auxPow.ParentHeader, header.Algo, target)
	return proofOfWorkResult(auxPow.ParentHeader, header.Algo, target, valid, err)
}

// CheckProofOfWork is ValidateProofOfWork reduced to whether the proof of
// work is acceptable
func (v *powValidator) CheckProofOfWork(block *externalapi.DomainBlock) bool {
	err := v.ValidateProofOfWork(block)
	if err != nil {
		log.Debugf("Proof of work of block %s rejected: %s", consensushashing.BlockHash(block), err)
		return false
	}
	return true
}

// target decodes header.Bits and checks it is a positive value within the
// network's limit for the header's algorithm
func (v *powValidator) target(header *externalapi.DomainBlockHeader) (*big.Int, error) {
	if !header.Algo.IsKnown() {
		return nil, errors.Wrapf(ruleerrors.ErrUnknownPowAlgo,
			"block selects unknown proof-of-work algorithm %d", header.Algo)
	}

	target := math.CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return nil, errors.Wrapf(ruleerrors.ErrUnexpectedDifficulty,
			"block target difficulty of %064x is too low", target)
	}

	powMax := v.params.PowMax[header.Algo]
	if target.Cmp(powMax) > 0 {
		return nil, errors.Wrapf(ruleerrors.ErrTargetTooHigh,
			"block target difficulty of %064x is higher than max of %064x for %s",
			target, powMax, header.Algo)
	}
	return target, nil
}

// proofOfWorkResult turns the outcome of a pow check of header into a rule
// error
func proofOfWorkResult(header *externalapi.DomainBlockHeader, algo externalapi.PowAlgo, target *big.Int,
	valid bool, err error) error {

	if err != nil {
		return err
	}
	if !valid {
		return errors.Wrapf(ruleerrors.ErrInvalidPoW,
			"%s proof-of-work hash of %s is higher than the target of %064x",
			algo, consensushashing.HeaderHash(header), target)
	}
	return nil
}
