package chainconfig

import (
	"errors"
	"math/big"
	"testing"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/utils/blockversion"
)

// TestMustRegisterPanic ensures the mustRegister function panics when used to
// register an invalid network.
func TestMustRegisterPanic(t *testing.T) {
	t.Parallel()

	// Setup a defer to catch the expected panic to ensure it actually
	// paniced.
	defer func() {
		if err := recover(); err == nil {
			t.Error("mustRegister did not panic as expected")
		}
	}()

	// Intentionally try to register duplicate params to force a panic.
	mustRegister(&MainnetParams)
}

func TestDefaultNetworks(t *testing.T) {
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &RegtestParams, &SimnetParams, &DevnetParams} {
		if err := params.Validate(); err != nil {
			t.Errorf("TestDefaultNetworks: %s", err)
		}
		if err := Register(params); !errors.Is(err, ErrDuplicateNet) {
			t.Errorf("TestDefaultNetworks: %s: expected ErrDuplicateNet, got %v", params.Name, err)
		}
		found, err := ByName(params.Name)
		if err != nil {
			t.Errorf("TestDefaultNetworks: ByName(%s): %s", params.Name, err)
		} else if found != params {
			t.Errorf("TestDefaultNetworks: ByName(%s) returned the wrong params", params.Name)
		}
	}

	if _, err := ByName("nonet"); !errors.Is(err, ErrUnknownNet) {
		t.Errorf("TestDefaultNetworks: expected ErrUnknownNet, got %v", err)
	}
}

func TestRegtestAllowsEasyTargets(t *testing.T) {
	// ~uint256(0) >> 1, as used to mine test blocks.
	easiest := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	for algo, powMax := range RegtestParams.PowMax {
		if powMax.Cmp(easiest) < 0 {
			t.Errorf("TestRegtestAllowsEasyTargets: %s limit is below 2^255-1", externalapi.PowAlgo(algo))
		}
	}
}

func TestValidate(t *testing.T) {
	valid := RegtestParams

	tests := []struct {
		name   string
		mutate func(params *Params)
	}{
		{
			name: "flag is not a single bit",
			mutate: func(params *Params) {
				params.VersionLayout = blockversion.Layout{AuxpowFlag: 0x300, ChainIDShift: 16}
			},
		},
		{
			name: "chain id overlaps the flag",
			mutate: func(params *Params) {
				params.VersionLayout = blockversion.Layout{AuxpowFlag: 0x100, ChainIDShift: 8}
			},
		},
		{
			name: "chain id too wide",
			mutate: func(params *Params) {
				params.AuxpowChainID = 1 << 16
			},
		},
		{
			name: "missing pow limit",
			mutate: func(params *Params) {
				params.PowMax[externalapi.PowAlgoKeccak] = nil
			},
		},
		{
			name: "zero pow limit",
			mutate: func(params *Params) {
				params.PowMax[externalapi.PowAlgoScrypt] = big.NewInt(0)
			},
		},
	}

	for _, test := range tests {
		params := valid
		test.mutate(&params)
		if err := params.Validate(); err == nil {
			t.Errorf("TestValidate: %s: expected an error", test.name)
		}
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("TestValidate: mutations leaked into the original params: %s", err)
	}
}
