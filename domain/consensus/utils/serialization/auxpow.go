package serialization

import (
	"io"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
)

const (
	// MaxChainBranchLength is the deepest chain merkle branch accepted while
	// decoding. Consensus enforces the same bound again.
	MaxChainBranchLength = 30

	// MaxCoinbaseBranchLength is the deepest coinbase merkle branch accepted
	// while decoding
	MaxCoinbaseBranchLength = 32
)

// SerializeAuxPow writes auxPow in the layout merge-mining parent chains
// use: the coinbase transaction, the parent block hash, both merkle
// branches and the parent header.
//
// The parent block hash is redundant with the parent header. It is written
// as zeros and ignored when reading.
func SerializeAuxPow(w io.Writer, auxPow *externalapi.DomainAuxPow) error {
	err := SerializeTransaction(w, auxPow.CoinbaseTx)
	if err != nil {
		return err
	}
	err = WriteElement(w, externalapi.NewZeroHash())
	if err != nil {
		return err
	}
	err = serializeMerkleBranch(w, &auxPow.CoinbaseBranch)
	if err != nil {
		return err
	}
	err = serializeMerkleBranch(w, &auxPow.ChainBranch)
	if err != nil {
		return err
	}
	return SerializeHeader(w, auxPow.ParentHeader)
}

// DeserializeAuxPow reads an AuxPow written by SerializeAuxPow
func DeserializeAuxPow(r io.Reader) (*externalapi.DomainAuxPow, error) {
	coinbaseTx, err := DeserializeTransaction(r)
	if err != nil {
		return nil, err
	}

	var ignoredParentHash externalapi.DomainHash
	err = ReadElement(r, &ignoredParentHash)
	if err != nil {
		return nil, err
	}

	coinbaseBranch, err := deserializeMerkleBranch(r, MaxCoinbaseBranchLength, "coinbase branch")
	if err != nil {
		return nil, err
	}
	chainBranch, err := deserializeMerkleBranch(r, MaxChainBranchLength, "chain branch")
	if err != nil {
		return nil, err
	}

	parentHeader, err := DeserializeHeader(r)
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainAuxPow{
		CoinbaseTx:     coinbaseTx,
		CoinbaseBranch: *coinbaseBranch,
		ChainBranch:    *chainBranch,
		ParentHeader:   parentHeader,
	}, nil
}

func serializeMerkleBranch(w io.Writer, branch *externalapi.DomainMerkleBranch) error {
	err := WriteVarInt(w, uint64(len(branch.Hashes)))
	if err != nil {
		return err
	}
	for _, hash := range branch.Hashes {
		err = WriteElement(w, hash)
		if err != nil {
			return err
		}
	}
	return WriteElement(w, branch.Index)
}

func deserializeMerkleBranch(r io.Reader, maxLength uint64, fieldName string) (*externalapi.DomainMerkleBranch, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxLength {
		return nil, malformedf("%s is too long: %d, max %d", fieldName, count, maxLength)
	}

	branch := &externalapi.DomainMerkleBranch{
		Hashes: make([]*externalapi.DomainHash, count),
	}
	for i := range branch.Hashes {
		hash := &externalapi.DomainHash{}
		err = ReadElement(r, hash)
		if err != nil {
			return nil, err
		}
		branch.Hashes[i] = hash
	}

	err = ReadElement(r, &branch.Index)
	if err != nil {
		return nil, err
	}
	return branch, nil
}
