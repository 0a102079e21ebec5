package dfamin

// mix32 is the 32-bit finalization step of MurmurHash3.
func mix32(v int32) uint32 {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return k ^ (k >> 16)
}
