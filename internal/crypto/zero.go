package crypto

// Zero overwrites a byte slice in memory with zeros. Used to drop derived
// keys and passphrase buffers as soon as they are no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
