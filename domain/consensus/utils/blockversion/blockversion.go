// Package blockversion owns the bit layout of the block header version field.
//
// A version packs three logical fields:
//
//	 31            ChainIDShift  AuxpowFlag            0
//	 | chain id   |  (unused)   | flag | base version |
//
// No other package may shift or mask a version directly.
package blockversion

const (
	// DefaultAuxpowFlag is the historical merge-mining flag bit
	DefaultAuxpowFlag int32 = 1 << 8

	// DefaultChainIDShift is the historical position of the chain id
	DefaultChainIDShift uint = 16

	// legacyVersion is the only version allowed to carry no chain id
	legacyVersion int32 = 1
)

// Layout describes where the sub-fields live inside a raw version. It is a
// network parameter, so chains with a different historical layout can
// describe it instead of hard-coding it.
type Layout struct {
	// AuxpowFlag is the single bit signalling merge-mining. Every bit below
	// it belongs to the base version.
	AuxpowFlag int32

	// ChainIDShift is the position of the lowest chain id bit. Every bit
	// from it upward belongs to the chain id.
	ChainIDShift uint
}

// DefaultLayout is the layout every network uses unless it overrides it
var DefaultLayout = Layout{
	AuxpowFlag:   DefaultAuxpowFlag,
	ChainIDShift: DefaultChainIDShift,
}

// Version is the decoded form of a raw header version
type Version struct {
	Base    int32
	Auxpow  bool
	ChainID int32
}

func (layout Layout) baseMask() int32 {
	return layout.AuxpowFlag - 1
}

// Decode splits a raw version into its sub-fields
func (layout Layout) Decode(raw int32) Version {
	return Version{
		Base:    layout.BaseVersion(raw),
		Auxpow:  layout.IsAuxpow(raw),
		ChainID: layout.ChainID(raw),
	}
}

// Encode packs the sub-fields into a raw version. Fields too wide for their
// slot wrap as integer arithmetic would.
func (layout Layout) Encode(version Version) int32 {
	raw := layout.WithBaseVersion(0, version.Base)
	raw = layout.WithAuxpowFlag(raw, version.Auxpow)
	return layout.WithChainID(raw, version.ChainID)
}

// BaseVersion returns the protocol version bits of raw
func (layout Layout) BaseVersion(raw int32) int32 {
	return raw & layout.baseMask()
}

// ChainID returns the chain id bits of raw
func (layout Layout) ChainID(raw int32) int32 {
	return raw >> layout.ChainIDShift
}

// IsAuxpow returns whether raw claims the block is merge-mined
func (layout Layout) IsAuxpow(raw int32) bool {
	return raw&layout.AuxpowFlag != 0
}

// IsLegacy returns whether raw is the pre-chain-id version, which is
// exempt from chain id checks
func (layout Layout) IsLegacy(raw int32) bool {
	return raw == legacyVersion
}

// WithBaseVersion returns raw with its base version replaced
func (layout Layout) WithBaseVersion(raw int32, base int32) int32 {
	return raw&^layout.baseMask() | base&layout.baseMask()
}

// WithChainID returns raw with its chain id replaced
func (layout Layout) WithChainID(raw int32, chainID int32) int32 {
	lowBits := int32(1)<<layout.ChainIDShift - 1
	return raw&lowBits | chainID<<layout.ChainIDShift
}

// WithAuxpowFlag returns raw with its merge-mining flag set or cleared
func (layout Layout) WithAuxpowFlag(raw int32, auxpow bool) int32 {
	if auxpow {
		return raw | layout.AuxpowFlag
	}
	return raw &^ layout.AuxpowFlag
}

// SetBaseVersion returns a version with the given base version and chain id
// and the merge-mining flag cleared
func (layout Layout) SetBaseVersion(base int32, chainID int32) int32 {
	return layout.Encode(Version{Base: base, ChainID: chainID})
}

// BaseVersion returns the base version of raw under DefaultLayout
func BaseVersion(raw int32) int32 { return DefaultLayout.BaseVersion(raw) }

// ChainID returns the chain id of raw under DefaultLayout
func ChainID(raw int32) int32 { return DefaultLayout.ChainID(raw) }

// IsAuxpow returns the merge-mining flag of raw under DefaultLayout
func IsAuxpow(raw int32) bool { return DefaultLayout.IsAuxpow(raw) }
