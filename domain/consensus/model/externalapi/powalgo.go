package externalapi

import "fmt"

// PowAlgo selects the hash function a block's proof of work is computed with
type PowAlgo uint8

// The proof-of-work algorithms known to consensus.
const (
	PowAlgoSHA256D PowAlgo = iota
	PowAlgoScrypt
	PowAlgoBlake2b
	PowAlgoBlake2s
	PowAlgoKeccak

	// NumPowAlgos must always come last
	NumPowAlgos
)

var powAlgoNames = [NumPowAlgos]string{
	PowAlgoSHA256D: "sha256d",
	PowAlgoScrypt:  "scrypt",
	PowAlgoBlake2b: "blake2b",
	PowAlgoBlake2s: "blake2s",
	PowAlgoKeccak:  "keccak",
}

// IsKnown returns whether algo is one of the algorithms known to consensus
func (algo PowAlgo) IsKnown() bool {
	return algo < NumPowAlgos
}

func (algo PowAlgo) String() string {
	if !algo.IsKnown() {
		return fmt.Sprintf("unknown(%d)", uint8(algo))
	}
	return powAlgoNames[algo]
}
