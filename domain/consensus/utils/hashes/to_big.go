package hashes

import (
	"math/big"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
)

// ToBig converts a hash into a big.Int that can be used to
// perform math comparisons.
func ToBig(hash *externalapi.DomainHash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	return new(big.Int).SetBytes(ReversedBytes(hash))
}

// ReversedBytes returns the hash bytes in display order, which is also
// the order hashes are committed to inside parent coinbase scripts.
func ReversedBytes(hash *externalapi.DomainHash) []byte {
	buf := hash.ByteSlice()
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
	return buf
}
