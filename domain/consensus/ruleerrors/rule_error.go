package ruleerrors

import (
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrUnexpectedDifficulty indicates specified bits do not align with
	// the expected value either because it is zero or because of the
	// sign bit.
	ErrUnexpectedDifficulty = newRuleError("ErrUnexpectedDifficulty")

	// ErrTargetTooHigh indicates specified bits decode to a target above
	// the maximum allowed for the block's algorithm.
	ErrTargetTooHigh = newRuleError("ErrTargetTooHigh")

	// ErrUnknownPowAlgo indicates the block selects a proof-of-work
	// algorithm consensus doesn't know.
	ErrUnknownPowAlgo = newRuleError("ErrUnknownPowAlgo")

	// ErrInvalidPoW indicates that the block proof-of-work is invalid.
	ErrInvalidPoW = newRuleError("ErrInvalidPoW")

	// ErrWrongChainID indicates a non-legacy block whose chain id is not
	// the one configured for this network.
	ErrWrongChainID = newRuleError("ErrWrongChainID")

	// ErrMissingAuxPow indicates a block whose version claims merge-mining
	// but that carries no AuxPow.
	ErrMissingAuxPow = newRuleError("ErrMissingAuxPow")

	// ErrUnexpectedAuxPow indicates a block that carries an AuxPow while its
	// version doesn't claim merge-mining.
	ErrUnexpectedAuxPow = newRuleError("ErrUnexpectedAuxPow")

	// ErrAuxPowNotCoinbase indicates the AuxPow parent transaction is not
	// the first transaction of the parent block.
	ErrAuxPowNotCoinbase = newRuleError("ErrAuxPowNotCoinbase")

	// ErrAuxPowMissingParentHeader indicates an AuxPow without the parent
	// block header.
	ErrAuxPowMissingParentHeader = newRuleError("ErrAuxPowMissingParentHeader")

	// ErrAuxPowSelfParent indicates the parent block has our own chain id.
	ErrAuxPowSelfParent = newRuleError("ErrAuxPowSelfParent")

	// ErrAuxPowChainBranchTooLong indicates the chain merkle branch is
	// deeper than MaxChainMerkleBranchLength.
	ErrAuxPowChainBranchTooLong = newRuleError("ErrAuxPowChainBranchTooLong")

	// ErrAuxPowBadParentMerkleRoot indicates the coinbase merkle branch
	// doesn't lead to the parent header's merkle root.
	ErrAuxPowBadParentMerkleRoot = newRuleError("ErrAuxPowBadParentMerkleRoot")

	// ErrAuxPowMissingCoinbase indicates the AuxPow coinbase transaction
	// has no input to carry the commitment.
	ErrAuxPowMissingCoinbase = newRuleError("ErrAuxPowMissingCoinbase")

	// ErrAuxPowMissingRoot indicates the chain merkle root is not in the
	// parent coinbase script.
	ErrAuxPowMissingRoot = newRuleError("ErrAuxPowMissingRoot")

	// ErrAuxPowMultipleRoots indicates the chain merkle root appears more
	// than once in the parent coinbase script.
	ErrAuxPowMultipleRoots = newRuleError("ErrAuxPowMultipleRoots")

	// ErrAuxPowMultipleHeaders indicates the merged mining marker appears
	// more than once in the parent coinbase script.
	ErrAuxPowMultipleHeaders = newRuleError("ErrAuxPowMultipleHeaders")

	// ErrAuxPowHeaderNotBeforeRoot indicates the merged mining marker is not
	// immediately followed by the chain merkle root.
	ErrAuxPowHeaderNotBeforeRoot = newRuleError("ErrAuxPowHeaderNotBeforeRoot")

	// ErrAuxPowRootTooLate indicates an unmarked chain merkle root that
	// doesn't start early enough in the coinbase script.
	ErrAuxPowRootTooLate = newRuleError("ErrAuxPowRootTooLate")

	// ErrAuxPowMissingSizeAndNonce indicates the coinbase script ends before
	// the merkle tree size and nonce.
	ErrAuxPowMissingSizeAndNonce = newRuleError("ErrAuxPowMissingSizeAndNonce")

	// ErrAuxPowBadTreeSize indicates the committed merkle tree size doesn't
	// match the chain merkle branch length.
	ErrAuxPowBadTreeSize = newRuleError("ErrAuxPowBadTreeSize")

	// ErrAuxPowWrongIndex indicates the chain merkle branch index is not
	// the one derived from the committed nonce and our chain id.
	ErrAuxPowWrongIndex = newRuleError("ErrAuxPowWrongIndex")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// IsRuleError returns whether err is, or wraps, a RuleError
func IsRuleError(err error) bool {
	return errors.As(err, &RuleError{})
}
