package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/globaltoken/globaltoken-core-wallet/domain/chainconfig"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/pow"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/auxpow"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/consensushashing"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/hashes"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/math"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/serialization"
)

const easyBits = 0x207fffff

func mine(t *testing.T, header *externalapi.DomainBlockHeader, algo externalapi.PowAlgo) {
	t.Helper()
	target := math.CompactToBig(easyBits)
	for i := 0; i < 10000; i++ {
		powHash, err := pow.HashWithAlgo(header, algo)
		if err != nil {
			t.Fatalf("HashWithAlgo: %+v", err)
		}
		if hashes.ToBig(powHash).Cmp(target) <= 0 {
			return
		}
		header.Nonce++
	}
	t.Fatalf("Couldn't mine the header")
}

func mergeMinedBlockHex(t *testing.T, params *chainconfig.Params) (string, *externalapi.DomainBlock) {
	t.Helper()
	layout := params.VersionLayout
	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version: layout.WithAuxpowFlag(layout.SetBaseVersion(2, params.AuxpowChainID), true),
			Time:    1296688602,
			Bits:    easyBits,
			Algo:    externalapi.PowAlgoKeccak,
		},
	}
	blockHash := consensushashing.HeaderHash(block.Header)

	builder := auxpow.NewBuilder(5, 42, layout)
	index := auxpow.ExpectedIndex(9, params.AuxpowChainID, 2)
	root := builder.BuildChainMerkleBranch(blockHash, 2, index)
	builder.SetCoinbase(auxpow.PushData(nil, auxpow.BuildCoinbaseData(true, root, 2, 9)))
	mine(t, builder.ParentHeader, block.Header.Algo)
	auxpow.SetAuxPow(block, builder.Build(), layout)

	var buf bytes.Buffer
	err := serialization.SerializeBlock(&buf, block, layout)
	if err != nil {
		t.Fatalf("SerializeBlock: %+v", err)
	}
	return hex.EncodeToString(buf.Bytes()), block
}

func TestCheckBlock(t *testing.T) {
	params := &chainconfig.RegtestParams
	blockHex, block := mergeMinedBlockHex(t, params)

	blockHash, valid, err := checkBlock(blockHex+"\n", params)
	if err != nil {
		t.Fatalf("TestCheckBlock: unexpected error: %+v", err)
	}
	if !valid {
		t.Errorf("TestCheckBlock: expected the block to be valid")
	}
	if !blockHash.Equal(consensushashing.BlockHash(block)) {
		t.Errorf("TestCheckBlock: expected hash %s, got %s", consensushashing.BlockHash(block), blockHash)
	}

	// Mainnet doesn't allow such an easy target.
	_, valid, err = checkBlock(blockHex, &chainconfig.MainnetParams)
	if err != nil {
		t.Fatalf("TestCheckBlock: unexpected error: %+v", err)
	}
	if valid {
		t.Errorf("TestCheckBlock: expected the block to be invalid on mainnet")
	}

	// Flip a bit of the header time, which the AuxPow commits to.
	serialized, _ := hex.DecodeString(blockHex)
	serialized[68] ^= 1
	_, valid, err = checkBlock(hex.EncodeToString(serialized), params)
	if err != nil {
		t.Fatalf("TestCheckBlock: unexpected error: %+v", err)
	}
	if valid {
		t.Errorf("TestCheckBlock: expected the tampered block to be invalid")
	}
}

func TestCheckBlockDecodingErrors(t *testing.T) {
	params := &chainconfig.RegtestParams
	blockHex, _ := mergeMinedBlockHex(t, params)

	tests := []struct {
		name     string
		blockHex string
	}{
		{"not hex", "zz"},
		{"empty", ""},
		{"truncated", blockHex[:len(blockHex)-2]},
		{"trailing bytes", blockHex + "00"},
	}

	for _, test := range tests {
		_, _, err := checkBlock(test.blockHex, params)
		if err == nil {
			t.Errorf("TestCheckBlockDecodingErrors: %s: expected an error", test.name)
		}
	}
}

func TestReadBlockHex(t *testing.T) {
	result, err := readBlockHex("abcd", strings.NewReader("ignored"))
	if err != nil || result != "abcd" {
		t.Errorf("TestReadBlockHex: expected the flag value, got %q, %v", result, err)
	}

	result, err = readBlockHex("", strings.NewReader("0102\n"))
	if err != nil || result != "0102\n" {
		t.Errorf("TestReadBlockHex: expected stdin, got %q, %v", result, err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]string{"--regtest", "--block", "00", "--loglevel", "CHCK=debug"})
	if err != nil {
		t.Fatalf("TestParseConfig: unexpected error: %s", err)
	}
	if cfg.NetParams() != &chainconfig.RegtestParams {
		t.Errorf("TestParseConfig: expected regtest, got %s", cfg.NetParams().Name)
	}
	if cfg.LogDir != defaultLogDir || cfg.NoLogFiles {
		t.Errorf("TestParseConfig: expected logging to files in %s", defaultLogDir)
	}
	if cfg.BlockHex != "00" {
		t.Errorf("TestParseConfig: expected block 00, got %q", cfg.BlockHex)
	}

	_, err = parseConfig([]string{"--loglevel", "loud"})
	if err == nil {
		t.Errorf("TestParseConfig: expected an error for an invalid log level")
	}

	_, err = parseConfig([]string{"--testnet", "--simnet"})
	if err == nil {
		t.Errorf("TestParseConfig: expected an error for multiple networks")
	}
}
