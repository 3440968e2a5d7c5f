package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	cerrors "github.com/calvra/cellar/internal/errors"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/salsa20/salsa"
)

const maxInt = int(^uint(0) >> 1)

// scryptKey derives a key with the scrypt function, accepting any cost
// parameter n > 1. The cost is not required to be a power of two: block
// selection reduces the 64-bit block index modulo n, the same behavior as
// libgcrypt's scrypt. Repositories whose headers were written against
// libgcrypt therefore derive identical keys.
func scryptKey(password, salt []byte, n, r, p, keyLen int) ([]byte, error) {
	if n <= 1 {
		return nil, fmt.Errorf("%w: scrypt cost %d must be greater than 1", cerrors.ErrKdf, n)
	}
	if r <= 0 || p <= 0 {
		return nil, fmt.Errorf("%w: scrypt r and p must be positive", cerrors.ErrKdf)
	}
	if uint64(r)*uint64(p) >= 1<<30 || r > maxInt/256 || n > maxInt/128/r {
		return nil, fmt.Errorf("%w: scrypt parameters too large", cerrors.ErrKdf)
	}

	b := pbkdf2.Key(password, salt, 1, p*128*r, sha256.New)

	v := make([]byte, 128*r*n)
	xy := make([]byte, 256*r)
	for i := 0; i < p; i++ {
		smix(b[i*128*r:(i+1)*128*r], r, n, v, xy)
	}

	return pbkdf2.Key(password, b, 1, keyLen, sha256.New), nil
}

func smix(b []byte, r, n int, v, xy []byte) {
	blockSize := 128 * r
	x := xy[:blockSize]
	y := xy[blockSize:]
	var t [64]byte

	copy(x, b)
	for i := 0; i < n; i++ {
		copy(v[i*blockSize:], x)
		blockMix(&t, x, y, r)
		x, y = y, x
	}
	for i := 0; i < n; i++ {
		j := int(integerify(x, r) % uint64(n))
		vj := v[j*blockSize : (j+1)*blockSize]
		for k := range x {
			x[k] ^= vj[k]
		}
		blockMix(&t, x, y, r)
		x, y = y, x
	}
	copy(b, x)
}

// blockMix is scrypt's BlockMix over the Salsa20/8 core. The running state
// starts from the last 64-byte block of in; Salsa output for even-indexed
// blocks lands in the first half of out, odd-indexed in the second.
func blockMix(state *[64]byte, in, out []byte, r int) {
	copy(state[:], in[(2*r-1)*64:])
	for i := 0; i < 2*r; i++ {
		blk := in[i*64:]
		for k := 0; k < 64; k++ {
			state[k] ^= blk[k]
		}
		salsa.Core208(state, state)

		dst := (i / 2) * 64
		if i%2 == 1 {
			dst = (r + i/2) * 64
		}
		copy(out[dst:dst+64], state[:])
	}
}

// integerify interprets the last 64-byte block of x as a little-endian
// 64-bit integer.
func integerify(x []byte, r int) uint64 {
	return binary.LittleEndian.Uint64(x[(2*r-1)*64:])
}
