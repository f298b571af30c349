package powvalidator

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/globaltoken/globaltoken-core-wallet/domain/chainconfig"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/pow"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/ruleerrors"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/auxpow"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/consensushashing"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/hashes"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/math"
)

const (
	// easyBits decodes to a target that about half of all hashes meet
	easyBits = 0x207fffff

	maxMiningAttempts = 10000

	testParentBaseVersion = 5
	testParentChainID     = 42
	testHeight            = 3
	testNonce             = 7
)

// mineHeader changes header's nonce until its hash under algo meets target,
// or fails to meet it when ok is false
func mineHeader(t *testing.T, header *externalapi.DomainBlockHeader, algo externalapi.PowAlgo, ok bool) {
	t.Helper()
	target := math.CompactToBig(easyBits)
	for i := 0; i < maxMiningAttempts; i++ {
		powHash, err := pow.HashWithAlgo(header, algo)
		if err != nil {
			t.Fatalf("HashWithAlgo: %+v", err)
		}
		if (hashes.ToBig(powHash).Cmp(target) <= 0) == ok {
			return
		}
		header.Nonce++
	}
	t.Fatalf("Couldn't mine header %s with ok=%t", spew.Sdump(header), ok)
}

func newBlock(version int32, algo externalapi.PowAlgo) *externalapi.DomainBlock {
	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:        version,
			HashPrevBlock:  *hashes.FromUint64(1),
			HashMerkleRoot: *hashes.FromUint64(2),
			Time:           1296688602,
			Bits:           easyBits,
			Algo:           algo,
		},
		Proof: externalapi.NativeProof{},
	}
}

// attachAuxPow commits block to a fresh parent block, mined under block's
// algorithm so that it meets the target iff parentOK
func attachAuxPow(t *testing.T, block *externalapi.DomainBlock, params *chainconfig.Params,
	parentChainID int32, parentOK bool) *auxpow.Builder {

	t.Helper()
	layout := params.VersionLayout
	block.Header.Version = layout.WithAuxpowFlag(block.Header.Version, true)
	blockHash := consensushashing.HeaderHash(block.Header)

	builder := auxpow.NewBuilder(testParentBaseVersion, parentChainID, layout)
	index := auxpow.ExpectedIndex(testNonce, params.AuxpowChainID, testHeight)
	root := builder.BuildChainMerkleBranch(blockHash, testHeight, index)
	builder.SetCoinbase(auxpow.PushData(nil, auxpow.BuildCoinbaseData(true, root, testHeight, testNonce)))
	mineHeader(t, builder.ParentHeader, block.Header.Algo, parentOK)

	auxpow.SetAuxPow(block, builder.Build(), layout)
	return builder
}

func expectValidation(t *testing.T, testName string, validator model.PowValidator,
	block *externalapi.DomainBlock, expectedErr error) {

	t.Helper()
	err := validator.ValidateProofOfWork(block)
	if expectedErr == nil {
		if err != nil {
			t.Errorf("%s: expected the block to be accepted, got: %+v", testName, err)
		}
	} else {
		if !errors.Is(err, expectedErr) {
			t.Errorf("%s: expected %s, got: %v", testName, expectedErr, err)
		}
		if !ruleerrors.IsRuleError(err) {
			t.Errorf("%s: expected a rule error, got: %v", testName, err)
		}
	}

	if validator.CheckProofOfWork(block) != (expectedErr == nil) {
		t.Errorf("%s: CheckProofOfWork disagrees with ValidateProofOfWork", testName)
	}
}

func TestVersionGate(t *testing.T) {
	params := &chainconfig.RegtestParams
	layout := params.VersionLayout
	ourChainID := params.AuxpowChainID
	validator := New(params)

	// Legacy blocks have no chain id.
	block := newBlock(1, externalapi.PowAlgoSHA256D)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, true)
	expectValidation(t, "TestVersionGate: legacy version", validator, block, nil)

	block = newBlock(2, externalapi.PowAlgoSHA256D)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, true)
	expectValidation(t, "TestVersionGate: version 2 without chain id", validator, block,
		ruleerrors.ErrWrongChainID)

	block = newBlock(layout.SetBaseVersion(2, ourChainID), externalapi.PowAlgoSHA256D)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, true)
	expectValidation(t, "TestVersionGate: our chain id", validator, block, nil)

	block = newBlock(layout.SetBaseVersion(2, ourChainID+1), externalapi.PowAlgoSHA256D)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, true)
	expectValidation(t, "TestVersionGate: other chain id", validator, block, ruleerrors.ErrWrongChainID)

	lenientParams := *params
	lenientParams.StrictChainID = false
	expectValidation(t, "TestVersionGate: other chain id, not strict", New(&lenientParams), block, nil)
}

func TestNativeProofOfWork(t *testing.T) {
	params := &chainconfig.RegtestParams
	layout := params.VersionLayout
	validator := New(params)

	for algo := externalapi.PowAlgo(0); algo < externalapi.NumPowAlgos; algo++ {
		block := newBlock(layout.SetBaseVersion(2, params.AuxpowChainID), algo)
		mineHeader(t, block.Header, algo, true)
		expectValidation(t, "TestNativeProofOfWork: "+algo.String()+" mined", validator, block, nil)

		// Identity hash and PoW hash differ for all but sha256d, so
		// tampering must be checked against a fresh mining result.
		tampered := block.Clone()
		tampered.Header.HashMerkleRoot = *hashes.FromUint64(3)
		mineHeader(t, tampered.Header, algo, false)
		expectValidation(t, "TestNativeProofOfWork: "+algo.String()+" tampered", validator, tampered,
			ruleerrors.ErrInvalidPoW)
	}

	// The flag without an AuxPow is rejected, clearing it restores the
	// native path.
	block := newBlock(layout.SetBaseVersion(2, params.AuxpowChainID), externalapi.PowAlgoSHA256D)
	block.Header.Version = layout.WithAuxpowFlag(block.Header.Version, true)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, true)
	expectValidation(t, "TestNativeProofOfWork: flag without AuxPow", validator, block, ruleerrors.ErrMissingAuxPow)

	block.Header.Version = layout.WithAuxpowFlag(block.Header.Version, false)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, false)
	expectValidation(t, "TestNativeProofOfWork: mined to fail", validator, block, ruleerrors.ErrInvalidPoW)
	mineHeader(t, block.Header, externalapi.PowAlgoSHA256D, true)
	expectValidation(t, "TestNativeProofOfWork: flag cleared", validator, block, nil)
}

func TestMergeMinedProofOfWork(t *testing.T) {
	params := &chainconfig.RegtestParams
	layout := params.VersionLayout
	validator := New(params)

	for algo := externalapi.PowAlgo(0); algo < externalapi.NumPowAlgos; algo++ {
		testName := "TestMergeMinedProofOfWork: " + algo.String()

		block := newBlock(layout.SetBaseVersion(2, params.AuxpowChainID), algo)
		// The block itself fails the target, only the parent is mined.
		mineHeader(t, block.Header, algo, false)

		attachAuxPow(t, block, params, testParentChainID, false)
		expectValidation(t, testName+" parent mined to fail", validator, block, ruleerrors.ErrInvalidPoW)

		builder := attachAuxPow(t, block, params, testParentChainID, true)
		expectValidation(t, testName+" parent mined", validator, block, nil)

		// The parent is checked against the block's target. Its own Bits
		// are not consulted.
		builder.ParentHeader.Bits = 0
		mineHeader(t, builder.ParentHeader, algo, true)
		auxpow.SetAuxPow(block, builder.Build(), layout)
		expectValidation(t, testName+" parent without bits", validator, block, nil)
	}
}

func TestMergeMinedProofMismatch(t *testing.T) {
	params := &chainconfig.RegtestParams
	layout := params.VersionLayout
	validator := New(params)

	block := newBlock(layout.SetBaseVersion(2, params.AuxpowChainID), externalapi.PowAlgoSHA256D)
	attachAuxPow(t, block, params, testParentChainID, true)
	expectValidation(t, "TestMergeMinedProofMismatch: valid", validator, block, nil)

	// An AuxPow on a block that doesn't claim merge-mining.
	mismatched := block.Clone()
	mismatched.Header.Version = layout.WithAuxpowFlag(mismatched.Header.Version, false)
	expectValidation(t, "TestMergeMinedProofMismatch: AuxPow without flag", validator, mismatched,
		ruleerrors.ErrUnexpectedAuxPow)

	// A nil AuxPow is the same as none.
	nilAuxPow := block.Clone()
	nilAuxPow.Proof = externalapi.MergeMinedProof{}
	expectValidation(t, "TestMergeMinedProofMismatch: nil AuxPow", validator, nilAuxPow,
		ruleerrors.ErrMissingAuxPow)

	// An AuxPow missing its parts is rejected rather than dereferenced.
	emptyAuxPow := block.Clone()
	emptyAuxPow.Proof = externalapi.MergeMinedProof{AuxPow: &externalapi.DomainAuxPow{}}
	expectValidation(t, "TestMergeMinedProofMismatch: empty AuxPow", validator, emptyAuxPow,
		ruleerrors.ErrAuxPowMissingCoinbase)

	noParentHeader := block.Clone()
	auxPowWithoutParent, _ := noParentHeader.AuxPow()
	auxPowWithoutParent.ParentHeader = nil
	expectValidation(t, "TestMergeMinedProofMismatch: AuxPow without parent header", validator, noParentHeader,
		ruleerrors.ErrAuxPowMissingParentHeader)

	// The AuxPow commits to the block hash, so any header change breaks it.
	tampered := block.Clone()
	tampered.Header.HashMerkleRoot = *hashes.FromUint64(3)
	expectValidation(t, "TestMergeMinedProofMismatch: tampered merkle root", validator, tampered,
		ruleerrors.ErrAuxPowMissingRoot)

	// The parent can't be a block of our own chain.
	selfParent := newBlock(layout.SetBaseVersion(2, params.AuxpowChainID), externalapi.PowAlgoSHA256D)
	attachAuxPow(t, selfParent, params, params.AuxpowChainID, true)
	expectValidation(t, "TestMergeMinedProofMismatch: self parent", validator, selfParent,
		ruleerrors.ErrAuxPowSelfParent)

	lenientParams := *params
	lenientParams.StrictChainID = false
	expectValidation(t, "TestMergeMinedProofMismatch: self parent, not strict", New(&lenientParams), selfParent, nil)
}

func TestTargetValidation(t *testing.T) {
	params := &chainconfig.RegtestParams
	layout := params.VersionLayout
	validator := New(params)
	version := layout.SetBaseVersion(2, params.AuxpowChainID)

	tests := []struct {
		name        string
		bits        uint32
		algo        externalapi.PowAlgo
		params      *chainconfig.Params
		expectedErr error
	}{
		{"zero target", 0, externalapi.PowAlgoSHA256D, params, ruleerrors.ErrUnexpectedDifficulty},
		{"negative target", 0x04923456, externalapi.PowAlgoSHA256D, params, ruleerrors.ErrUnexpectedDifficulty},
		{"unknown algo", easyBits, externalapi.NumPowAlgos, params, ruleerrors.ErrUnknownPowAlgo},
		{"above regtest limit", 0x21010000, externalapi.PowAlgoSHA256D, params, ruleerrors.ErrTargetTooHigh},
		{"above mainnet limit", easyBits, externalapi.PowAlgoSHA256D, &chainconfig.MainnetParams,
			ruleerrors.ErrTargetTooHigh},
		{"above mainnet scrypt limit", math.BigToCompact(new(big.Int).Lsh(big.NewInt(1), 240)),
			externalapi.PowAlgoScrypt, &chainconfig.MainnetParams, ruleerrors.ErrTargetTooHigh},
	}

	for _, test := range tests {
		block := newBlock(version, test.algo)
		block.Header.Bits = test.bits
		testValidator := validator
		if test.params != params {
			testValidator = New(test.params)
		}
		expectValidation(t, "TestTargetValidation: "+test.name, testValidator, block, test.expectedErr)
	}
}

func TestConcurrentValidation(t *testing.T) {
	params := &chainconfig.RegtestParams
	layout := params.VersionLayout
	validator := New(params)

	validBlock := newBlock(layout.SetBaseVersion(2, params.AuxpowChainID), externalapi.PowAlgoBlake2b)
	attachAuxPow(t, validBlock, params, testParentChainID, true)

	invalidBlock := validBlock.Clone()
	invalidBlock.Header.Time++

	const goroutines = 16
	results := make(chan bool, goroutines*2)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			results <- validator.CheckProofOfWork(validBlock)
		}()
		go func() {
			defer wg.Done()
			results <- !validator.CheckProofOfWork(invalidBlock)
		}()
	}
	wg.Wait()
	close(results)

	for result := range results {
		if !result {
			t.Fatalf("TestConcurrentValidation: concurrent validation returned a wrong verdict")
		}
	}
}
