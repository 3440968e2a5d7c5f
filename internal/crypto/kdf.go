package crypto

// Default scrypt parameters for new repositories. The work factor is
// scrypt's N cost parameter itself, not its base-2 logarithm, and need not
// be a power of two; r is fixed at 8.
const (
	DefaultKeySize               = 32
	DefaultWorkFactor            = 20
	DefaultParallelizationFactor = 1

	scryptBlockSizeFactor = 8
)

// DeriveKey derives a symmetric key of keySize bytes from a passphrase and
// salt using scrypt with N = workFactor, r = 8, and the given
// parallelization factor. Identical inputs always produce identical output.
//
// The caller owns the returned key and should Zero it after use.
func DeriveKey(passphrase, salt []byte, keySize, workFactor, parallelizationFactor int) ([]byte, error) {
	return scryptKey(passphrase, salt, workFactor, scryptBlockSizeFactor, parallelizationFactor, keySize)
}
