package wfc

// BlockSeed derives a per-block seed from the world seed and the block
// coordinate using splitmix-style integer mixing. It is a pure function,
// stable across sessions, and decorrelates the two axes with distinct odd
// constants so transposed coordinates hash differently.
func BlockSeed(worldSeed int64, bx, by int) int64 {
	h := uint64(worldSeed)
	h ^= uint64(int64(bx)) * 0x9e3779b97f4a7c15
	h = mix64(h)
	h ^= uint64(int64(by)) * 0xbf58476d1ce4e5b9
	h = mix64(h)
	return int64(h)
}

// mix64 avalanches a 64-bit value (splitmix64 finalizer)
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
