package crypto

import (
	"encoding/binary"
	"fmt"

	cerrors "github.com/calvra/cellar/internal/errors"
)

// padLengthPrefixSize is the size of the little-endian length prefix
// embedded at the front of every padded buffer.
const padLengthPrefixSize = 8

// Pad returns data prefixed with its original length as a little-endian
// 64-bit integer and padded with random bytes until the total length is a
// positive multiple of blockSize. The result is always at least
// padLengthPrefixSize bytes long.
func Pad(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: invalid block size %d", cerrors.ErrCorrupt, blockSize)
	}

	prefixed := len(data) + padLengthPrefixSize
	blocks := prefixed / blockSize
	if prefixed%blockSize != 0 {
		blocks++
	}
	paddedSize := blocks * blockSize

	tail, err := RandomBytes(paddedSize-prefixed, Strong)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, 0, paddedSize)
	padded = binary.LittleEndian.AppendUint64(padded, uint64(len(data)))
	padded = append(padded, data...)
	padded = append(padded, tail...)
	return padded, nil
}

// Unpad reverses Pad, recovering the original data by reading the embedded
// length prefix and truncating the random tail.
func Unpad(data []byte) ([]byte, error) {
	if len(data) < padLengthPrefixSize {
		return nil, fmt.Errorf("%w: padded data shorter than length prefix", cerrors.ErrCorrupt)
	}

	size := binary.LittleEndian.Uint64(data)
	if size > uint64(len(data)-padLengthPrefixSize) {
		return nil, fmt.Errorf("%w: embedded length %d exceeds available data", cerrors.ErrCorrupt, size)
	}

	return data[padLengthPrefixSize : padLengthPrefixSize+size], nil
}
