package serialization

import (
	"io"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/blockversion"
	"github.com/pkg/errors"
)

// SerializeBlock writes the block header, its algorithm selector and, when
// the version claims merge-mining, the AuxPow.
//
// The proof variant must agree with the version flag under layout, since
// the flag is the only thing telling a reader whether an AuxPow follows.
func SerializeBlock(w io.Writer, block *externalapi.DomainBlock, layout blockversion.Layout) error {
	auxPow, isMergeMined := block.AuxPow()
	if isMergeMined != layout.IsAuxpow(block.Header.Version) {
		return errors.Errorf("block version %#x doesn't agree with its proof of type %T",
			block.Header.Version, block.Proof)
	}

	err := SerializeHeader(w, block.Header)
	if err != nil {
		return err
	}
	err = WriteElement(w, block.Header.Algo)
	if err != nil {
		return err
	}
	if !isMergeMined {
		return nil
	}
	return SerializeAuxPow(w, auxPow)
}

// DeserializeBlock reads a block written by SerializeBlock. The result
// carries a MergeMinedProof exactly when the version claims merge-mining
// under layout.
func DeserializeBlock(r io.Reader, layout blockversion.Layout) (*externalapi.DomainBlock, error) {
	header, err := DeserializeHeader(r)
	if err != nil {
		return nil, err
	}
	err = ReadElement(r, &header.Algo)
	if err != nil {
		return nil, err
	}

	block := &externalapi.DomainBlock{
		Header: header,
		Proof:  externalapi.NativeProof{},
	}
	if !layout.IsAuxpow(header.Version) {
		return block, nil
	}

	auxPow, err := DeserializeAuxPow(r)
	if err != nil {
		return nil, err
	}
	block.Proof = externalapi.MergeMinedProof{AuxPow: auxPow}
	return block, nil
}
