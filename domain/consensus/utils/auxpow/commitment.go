package auxpow

import (
	"bytes"
	"encoding/binary"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// MaxLegacyRootOffset is the latest position the chain merkle root may start
// at in a coinbase script that has no merged mining header
const MaxLegacyRootOffset = 20

// MergedMiningHeader is the marker that may precede the chain merkle root in
// a parent coinbase script
var MergedMiningHeader = []byte{0xfa, 0xbe, 0x6d, 0x6d}

// Commitment is what a parent coinbase script commits to
type Commitment struct {
	// Offset is where the chain merkle root starts in the script
	Offset int

	// Marked tells whether MergedMiningHeader precedes the root
	Marked bool

	// Size is the committed number of chain merkle tree leaves
	Size uint32

	// Nonce is the committed nonce ExpectedIndex is derived from
	Nonce uint32
}

// FindCommitment locates rootBytes in script and reads the tree size and
// nonce following it. The size must be 2^height.
//
// The root must occur exactly once. If MergedMiningHeader occurs, it must
// occur once and immediately precede the root. Otherwise the root must start
// within the first MaxLegacyRootOffset bytes.
//
// script is only read, never parsed as a script.
func FindCommitment(script []byte, rootBytes []byte, height uint32) (*Commitment, error) {
	headerOffset := bytes.Index(script, MergedMiningHeader)
	rootOffset := bytes.Index(script, rootBytes)
	if rootOffset < 0 {
		return nil, errors.Wrapf(ruleerrors.ErrAuxPowMissingRoot,
			"chain merkle root %x is missing from the parent coinbase", rootBytes)
	}
	if bytes.Index(script[rootOffset+1:], rootBytes) >= 0 {
		return nil, errors.Wrapf(ruleerrors.ErrAuxPowMultipleRoots,
			"chain merkle root %x appears more than once in the parent coinbase", rootBytes)
	}

	marked := headerOffset >= 0
	if marked {
		if bytes.Index(script[headerOffset+1:], MergedMiningHeader) >= 0 {
			return nil, errors.Wrapf(ruleerrors.ErrAuxPowMultipleHeaders,
				"multiple merged mining headers in the parent coinbase")
		}
		if headerOffset+len(MergedMiningHeader) != rootOffset {
			return nil, errors.Wrapf(ruleerrors.ErrAuxPowHeaderNotBeforeRoot,
				"merged mining header at %d is not just before the chain merkle root at %d",
				headerOffset, rootOffset)
		}
	} else if rootOffset > MaxLegacyRootOffset {
		return nil, errors.Wrapf(ruleerrors.ErrAuxPowRootTooLate,
			"chain merkle root starts at %d, but must start in the first %d bytes of the parent coinbase",
			rootOffset, MaxLegacyRootOffset)
	}

	tail := script[rootOffset+len(rootBytes):]
	if len(tail) < 8 {
		return nil, errors.Wrapf(ruleerrors.ErrAuxPowMissingSizeAndNonce,
			"only %d bytes follow the chain merkle root, while the tree size and nonce take 8", len(tail))
	}

	commitment := &Commitment{
		Offset: rootOffset,
		Marked: marked,
		Size:   binary.LittleEndian.Uint32(tail[:4]),
		Nonce:  binary.LittleEndian.Uint32(tail[4:8]),
	}

	expectedSize := uint64(1) << height
	if uint64(commitment.Size) != expectedSize {
		return nil, errors.Wrapf(ruleerrors.ErrAuxPowBadTreeSize,
			"the parent coinbase commits to a chain merkle tree of size %d, but the branch implies %d",
			commitment.Size, expectedSize)
	}

	return commitment, nil
}
