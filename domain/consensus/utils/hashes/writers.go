package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is double SHA-256.
type HashWriter struct {
	hash.Hash
}

// NewDoubleSHA256Writer returns a new HashWriter whose Finalize applies
// SHA-256 twice, as block, transaction and merkle hashes do.
func NewDoubleSHA256Writer() HashWriter {
	return HashWriter{sha256.New()}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *externalapi.DomainHash {
	var firstPass [externalapi.DomainHashSize]byte
	copy(firstPass[:], h.Sum(firstPass[:0]))
	sum := sha256.Sum256(firstPass[:])
	return externalapi.NewDomainHashFromByteArray(&sum)
}

// DoubleSHA256 returns the double SHA-256 of data
func DoubleSHA256(data []byte) *externalapi.DomainHash {
	writer := NewDoubleSHA256Writer()
	writer.InfallibleWrite(data)
	return writer.Finalize()
}
