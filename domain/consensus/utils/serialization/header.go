package serialization

import (
	"io"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
)

// HeaderSize is the size of a serialized block header, excluding the
// algorithm selector
const HeaderSize = 80

// SerializeHeader writes the standard 80-byte header serialization. It is
// the preimage of both the identity hash and the proof-of-work hash.
func SerializeHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return WriteElements(w, header.Version, &header.HashPrevBlock, &header.HashMerkleRoot,
		header.Time, header.Bits, header.Nonce)
}

// DeserializeHeader reads a standard 80-byte header. The algorithm selector
// is not part of it and is left as PowAlgoSHA256D.
func DeserializeHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := ReadElements(r, &header.Version, &header.HashPrevBlock, &header.HashMerkleRoot,
		&header.Time, &header.Bits, &header.Nonce)
	if err != nil {
		return nil, err
	}
	return header, nil
}
