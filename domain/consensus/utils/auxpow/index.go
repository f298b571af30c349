package auxpow

// ExpectedIndex returns the chain merkle tree slot a chain with chainID must
// occupy in a tree of the given height, for the nonce committed in the
// parent coinbase.
//
// All arithmetic is on uint32 and wraps. Heights of 32 and above leave the
// value unreduced.
func ExpectedIndex(nonce uint32, chainID int32, height uint32) int32 {
	rand := nonce
	rand = rand*1103515245 + 12345
	rand += uint32(chainID)
	rand = rand*1103515245 + 12345

	if height >= 32 {
		return int32(rand)
	}
	return int32(rand % (uint32(1) << height))
}
