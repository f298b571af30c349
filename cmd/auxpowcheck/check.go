package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"io/ioutil"
	"strings"

	"github.com/globaltoken/globaltoken-core-wallet/domain/chainconfig"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/processes/powvalidator"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/consensushashing"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/serialization"
	"github.com/globaltoken/globaltoken-core-wallet/infrastructure/logger"
	"github.com/pkg/errors"
)

// readBlockHex returns blockHex, or the whole of stdin if blockHex is empty
func readBlockHex(blockHex string, stdin io.Reader) (string, error) {
	if blockHex != "" {
		return blockHex, nil
	}
	input, err := ioutil.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "couldn't read the block from stdin")
	}
	return string(input), nil
}

// decodeBlock parses the hex encoding of a block header followed by its
// algorithm byte and, when the version claims merge-mining, its AuxPow
func decodeBlock(blockHex string, params *chainconfig.Params) (*externalapi.DomainBlock, error) {
	serialized, err := hex.DecodeString(strings.TrimSpace(blockHex))
	if err != nil {
		return nil, errors.Wrap(err, "the block is not valid hex")
	}

	reader := bytes.NewReader(serialized)
	block, err := serialization.DeserializeBlock(reader, params.VersionLayout)
	if err != nil {
		return nil, err
	}
	if reader.Len() != 0 {
		return nil, errors.Errorf("%d unexpected bytes after the block", reader.Len())
	}
	return block, nil
}

// checkBlock decodes the block and returns its hash and whether its proof of
// work is acceptable on the network described by params
func checkBlock(blockHex string, params *chainconfig.Params) (*externalapi.DomainHash, bool, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "checkBlock")
	defer onEnd()

	block, err := decodeBlock(blockHex, params)
	if err != nil {
		return nil, false, err
	}

	blockHash := consensushashing.BlockHash(block)
	_, mergeMined := block.AuxPow()
	log.Infof("Checking %s block %s on %s (merge-mined: %t)", block.Header.Algo, blockHash, params.Name, mergeMined)

	err = powvalidator.New(params).ValidateProofOfWork(block)
	if err != nil {
		log.Infof("Block %s rejected: %s", blockHash, err)
		return blockHash, false, nil
	}
	return blockHash, true, nil
}
