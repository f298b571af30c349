package model

import "github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"

// PowValidator decides whether a block's proof of work, native or
// merge-mined, is acceptable
type PowValidator interface {
	ValidateProofOfWork(block *externalapi.DomainBlock) error
	CheckProofOfWork(block *externalapi.DomainBlock) bool
}
