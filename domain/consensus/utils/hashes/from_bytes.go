package hashes

import (
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
)

// FromUint64 returns the hash whose numeric value, as read by ToBig, is n.
// It is handy for filler hashes and test vectors.
func FromUint64(n uint64) *externalapi.DomainHash {
	var hashBytes [externalapi.DomainHashSize]byte
	for i := 0; i < 8; i++ {
		hashBytes[i] = byte(n >> (8 * i))
	}
	return externalapi.NewDomainHashFromByteArray(&hashBytes)
}
