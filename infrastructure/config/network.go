package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/globaltoken/globaltoken-core-wallet/domain/chainconfig"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet                 bool   `long:"testnet" description:"Use the test network"`
	Regtest                 bool   `long:"regtest" description:"Use the regression test network"`
	Simnet                  bool   `long:"simnet" description:"Use the simulation test network"`
	Devnet                  bool   `long:"devnet" description:"Use the development test network"`
	Net                     string `long:"net" description:"Use the registered network with the given name"`
	OverrideChainParamsFile string `long:"override-chain-params-file" description:"Overrides chain params (allowed only on devnet)"`

	ActiveNetParams *chainconfig.Params
}

type overrideChainParamsConfig struct {
	AuxpowChainID *int32            `json:"auxpowChainId"`
	StrictChainID *bool             `json:"strictChainId"`
	PowMax        map[string]string `json:"powMax"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// Default net is main net
	netName := chainconfig.MainnetParams.Name
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	for _, selection := range []struct {
		selected bool
		name     string
	}{
		{networkFlags.Testnet, chainconfig.TestnetParams.Name},
		{networkFlags.Regtest, chainconfig.RegtestParams.Name},
		{networkFlags.Simnet, chainconfig.SimnetParams.Name},
		{networkFlags.Devnet, chainconfig.DevnetParams.Name},
		{networkFlags.Net != "", networkFlags.Net},
	} {
		if selection.selected {
			numNets++
			netName = selection.name
		}
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest, simnet, devnet, net) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	params, err := chainconfig.ByName(netName)
	if err != nil {
		return err
	}
	networkFlags.ActiveNetParams = params

	err = networkFlags.overrideChainParams()
	if err != nil {
		return err
	}

	log.Debugf("Resolved network %s", networkFlags.ActiveNetParams.Name)
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chainconfig.Params {
	return networkFlags.ActiveNetParams
}

// overrideChainParams replaces ActiveNetParams with a modified copy of the
// devnet parameters. The registered parameters are never mutated.
func (networkFlags *NetworkFlags) overrideChainParams() error {
	if networkFlags.OverrideChainParamsFile == "" {
		return nil
	}

	if networkFlags.ActiveNetParams.Net != chainconfig.Devnet {
		return errors.Errorf("override-chain-params-file is allowed only when using devnet")
	}

	overrideChainParamsFile, err := os.Open(networkFlags.OverrideChainParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideChainParamsFile.Close()

	decoder := json.NewDecoder(overrideChainParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideChainParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse %s", networkFlags.OverrideChainParamsFile)
	}

	params := *networkFlags.ActiveNetParams

	if config.AuxpowChainID != nil {
		params.AuxpowChainID = *config.AuxpowChainID
	}

	if config.StrictChainID != nil {
		params.StrictChainID = *config.StrictChainID
	}

	for algoName, powMaxHex := range config.PowMax {
		algo, err := parsePowAlgo(algoName)
		if err != nil {
			return err
		}
		powMax, ok := big.NewInt(0).SetString(powMaxHex, 16)
		if !ok {
			return errors.Errorf("couldn't convert %s to big int", powMaxHex)
		}
		params.PowMax[algo] = powMax
	}

	err = params.Validate()
	if err != nil {
		return err
	}

	log.Infof("Overriding %s params from %s", params.Name, networkFlags.OverrideChainParamsFile)
	networkFlags.ActiveNetParams = &params
	return nil
}

func parsePowAlgo(name string) (externalapi.PowAlgo, error) {
	for algo := externalapi.PowAlgo(0); algo < externalapi.NumPowAlgos; algo++ {
		if algo.String() == name {
			return algo, nil
		}
	}
	return 0, errors.Errorf("unknown proof-of-work algorithm %q", name)
}
