package pow

import (
	"bytes"
	"math/big"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/ruleerrors"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/hashes"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

// Litecoin scrypt parameters
const (
	scryptN      = 1024
	scryptR      = 1
	scryptP      = 1
	scryptKeyLen = externalapi.DomainHashSize
)

// CheckProofOfWorkWithTarget check's if the block has a valid PoW according to the provided target
// it does not check if the difficulty itself is valid or less than the maximum for the appropriate network
func CheckProofOfWorkWithTarget(header *externalapi.DomainBlockHeader, target *big.Int) (bool, error) {
	return CheckProofOfWorkWithTargetAndAlgo(header, header.Algo, target)
}

// CheckProofOfWorkWithTargetAndAlgo is like CheckProofOfWorkWithTarget but
// hashes header under algo. It is used for merge-mined parent headers, which
// are hashed under the algorithm of the block they prove.
func CheckProofOfWorkWithTargetAndAlgo(header *externalapi.DomainBlockHeader, algo externalapi.PowAlgo,
	target *big.Int) (bool, error) {

	powHash, err := HashWithAlgo(header, algo)
	if err != nil {
		return false, err
	}

	// The block pow hash must be less or equal than the claimed target.
	return hashes.ToBig(powHash).Cmp(target) <= 0, nil
}

// Hash returns the proof-of-work hash of header under its algorithm: the
// selected hash function over the 80-byte header serialization
func Hash(header *externalapi.DomainBlockHeader) (*externalapi.DomainHash, error) {
	return HashWithAlgo(header, header.Algo)
}

// HashWithAlgo is like Hash but hashes under algo instead of the header's
// own selector. A merge-mined parent header is hashed under the algorithm of
// the block it proves.
func HashWithAlgo(header *externalapi.DomainBlockHeader, algo externalapi.PowAlgo) (*externalapi.DomainHash, error) {
	var buf bytes.Buffer
	err := serialization.SerializeHeader(&buf, header)
	if err != nil {
		return nil, err
	}
	data := buf.Bytes()

	switch algo {
	case externalapi.PowAlgoSHA256D:
		return hashes.DoubleSHA256(data), nil

	case externalapi.PowAlgoScrypt:
		digest, err := scrypt.Key(data, data, scryptN, scryptR, scryptP, scryptKeyLen)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return externalapi.NewDomainHashFromByteSlice(digest)

	case externalapi.PowAlgoBlake2b:
		digest := blake2b.Sum256(data)
		return externalapi.NewDomainHashFromByteArray(&digest), nil

	case externalapi.PowAlgoBlake2s:
		digest := blake2s.Sum256(data)
		return externalapi.NewDomainHashFromByteArray(&digest), nil

	case externalapi.PowAlgoKeccak:
		hasher := sha3.NewLegacyKeccak256()
		hasher.Write(data)
		return externalapi.NewDomainHashFromByteSlice(hasher.Sum(nil))
	}

	return nil, errors.Wrapf(ruleerrors.ErrUnknownPowAlgo, "unknown proof-of-work algorithm %d", algo)
}
