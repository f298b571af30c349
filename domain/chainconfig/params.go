// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainconfig

import (
	"math/big"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/blockversion"
	"github.com/pkg/errors"
)

// These variables are the proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// sha256PowMax is the highest sha256d proof of work value on the public
	// networks. It is the value 2^224 - 1.
	sha256PowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	// altPowMax is the highest proof of work value on the public networks
	// for every other algorithm. It is the value 2^236 - 1.
	altPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// easyPowMax is the highest proof of work value on the local test
	// networks, for every algorithm. It is the value 2^255 - 1.
	easyPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// auxpowChainID is the chain id every default network commits to in block
// versions. Parent chains must use a different one.
const auxpowChainID = 0x0011

// Net represents which network a message belongs to.
type Net uint32

// Constants used to indicate the message network.
const (
	// Mainnet represents the main network.
	Mainnet Net = 0xb6d3c2e4

	// Testnet represents the test network.
	Testnet Net = 0xc2b4a6d9

	// Regtest represents the regression test network.
	Regtest Net = 0xdab5bffa

	// Simnet represents the simulation test network.
	Simnet Net = 0x12141c16

	// Devnet represents the development test network.
	Devnet Net = 0x6d6e7673
)

// Params defines a network by the parameters proof-of-work validation
// depends on. They are selected once at startup and read-only afterwards.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net Net

	// AuxpowChainID is the chain id this network commits to in block
	// versions and in merge-mining proofs.
	AuxpowChainID int32

	// StrictChainID requires non-legacy blocks to carry AuxpowChainID, and
	// forbids merge-mining on a parent whose chain id is also
	// AuxpowChainID.
	StrictChainID bool

	// VersionLayout describes where the chain id and the merge-mining flag
	// live in block versions.
	VersionLayout blockversion.Layout

	// PowMax defines, per algorithm, the highest allowed proof of work
	// value for a block as a uint256.
	PowMax [externalapi.NumPowAlgos]*big.Int
}

func uniformPowMax(powMax *big.Int) [externalapi.NumPowAlgos]*big.Int {
	var result [externalapi.NumPowAlgos]*big.Int
	for algo := range result {
		result[algo] = powMax
	}
	return result
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:          "mainnet",
	Net:           Mainnet,
	AuxpowChainID: auxpowChainID,
	StrictChainID: true,
	VersionLayout: blockversion.DefaultLayout,
	PowMax: [externalapi.NumPowAlgos]*big.Int{
		externalapi.PowAlgoSHA256D: sha256PowMax,
		externalapi.PowAlgoScrypt:  altPowMax,
		externalapi.PowAlgoBlake2b: altPowMax,
		externalapi.PowAlgoBlake2s: altPowMax,
		externalapi.PowAlgoKeccak:  altPowMax,
	},
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:          "testnet",
	Net:           Testnet,
	AuxpowChainID: auxpowChainID,
	StrictChainID: true,
	VersionLayout: blockversion.DefaultLayout,
	PowMax:        uniformPowMax(altPowMax),
}

// RegtestParams defines the network parameters for the regression test
// network. Difficulty is low enough to mine blocks in tests.
var RegtestParams = Params{
	Name:          "regtest",
	Net:           Regtest,
	AuxpowChainID: auxpowChainID,
	StrictChainID: true,
	VersionLayout: blockversion.DefaultLayout,
	PowMax:        uniformPowMax(easyPowMax),
}

// SimnetParams defines the network parameters for the simulation test
// network. It is intended for private use within a group of individuals
// doing simulation testing.
var SimnetParams = Params{
	Name:          "simnet",
	Net:           Simnet,
	AuxpowChainID: auxpowChainID,
	StrictChainID: true,
	VersionLayout: blockversion.DefaultLayout,
	PowMax:        uniformPowMax(easyPowMax),
}

// DevnetParams defines the network parameters for the development network.
// It is the only network whose parameters may be overridden from a file.
var DevnetParams = Params{
	Name:          "devnet",
	Net:           Devnet,
	AuxpowChainID: auxpowChainID,
	StrictChainID: false,
	VersionLayout: blockversion.DefaultLayout,
	PowMax:        uniformPowMax(altPowMax),
}

// Validate checks that params are internally consistent
func (p *Params) Validate() error {
	layout := p.VersionLayout
	if layout.AuxpowFlag <= 0 || layout.AuxpowFlag&(layout.AuxpowFlag-1) != 0 {
		return errors.Errorf("%s: auxpow flag %#x is not a single bit", p.Name, layout.AuxpowFlag)
	}
	if layout.ChainIDShift >= 32 || int32(1)<<layout.ChainIDShift <= layout.AuxpowFlag {
		return errors.Errorf("%s: chain id shift %d doesn't leave room for the auxpow flag %#x",
			p.Name, layout.ChainIDShift, layout.AuxpowFlag)
	}
	if layout.ChainID(layout.WithChainID(0, p.AuxpowChainID)) != p.AuxpowChainID {
		return errors.Errorf("%s: chain id %d doesn't fit in the version layout", p.Name, p.AuxpowChainID)
	}
	for algo, powMax := range p.PowMax {
		if powMax == nil || powMax.Sign() <= 0 {
			return errors.Errorf("%s: proof-of-work limit of %s is not positive",
				p.Name, externalapi.PowAlgo(algo))
		}
	}
	return nil
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where the parameters for a network
	// were requested but no network by that name was registered.
	ErrUnknownNet = errors.New("unknown network")
)

var (
	registeredNets = make(map[Net]*Params)
)

// Register registers the network parameters for a network. This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks).
//
// Network parameters should be registered into this package by a main package
// as early as possible. Then, library packages may lookup networks or network
// parameters based on inputs and work regardless of the network being standard
// or not.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	if err := params.Validate(); err != nil {
		return err
	}
	registeredNets[params.Net] = params

	return nil
}

// ByName returns the registered network called name
func ByName(name string) (*Params, error) {
	for _, params := range registeredNets {
		if params.Name == name {
			return params, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownNet, "network %q is not registered", name)
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&RegtestParams)
	mustRegister(&SimnetParams)
	mustRegister(&DevnetParams)
}
