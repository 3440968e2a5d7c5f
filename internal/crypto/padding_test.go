package crypto

import (
	"bytes"
	"errors"
	"testing"

	cerrors "github.com/calvra/cellar/internal/errors"
)

func TestPadUnpadRoundTrip(t *testing.T) {
	blockSizes := []int{8, 16, 32}
	lengths := []int{0, 1, 7, 8, 9, 15, 16, 17, 31, 32, 63, 100, 123, 4096, 10000}

	for _, blockSize := range blockSizes {
		for _, length := range lengths {
			data, err := RandomBytes(length, Weak)
			if err != nil {
				t.Fatalf("RandomBytes failed: %v", err)
			}

			padded, err := Pad(data, blockSize)
			if err != nil {
				t.Fatalf("Pad(len=%d, b=%d) failed: %v", length, blockSize, err)
			}

			if len(padded)%blockSize != 0 {
				t.Errorf("Pad(len=%d, b=%d): padded length %d not a multiple of block size", length, blockSize, len(padded))
			}
			if len(padded) < length+8 {
				t.Errorf("Pad(len=%d, b=%d): padded length %d shorter than data plus prefix", length, blockSize, len(padded))
			}
			if len(padded) == 0 {
				t.Errorf("Pad(len=%d, b=%d): padded length must be positive", length, blockSize)
			}

			unpadded, err := Unpad(padded)
			if err != nil {
				t.Fatalf("Unpad(len=%d, b=%d) failed: %v", length, blockSize, err)
			}
			if !bytes.Equal(unpadded, data) {
				t.Errorf("Unpad(Pad(x)) != x for len=%d, b=%d", length, blockSize)
			}
		}
	}
}

func TestPadInvalidBlockSize(t *testing.T) {
	for _, blockSize := range []int{0, -1, -16} {
		if _, err := Pad([]byte("data"), blockSize); !errors.Is(err, cerrors.ErrCorrupt) {
			t.Errorf("Pad with block size %d: expected ErrCorrupt, got %v", blockSize, err)
		}
	}
}

func TestUnpadTooShort(t *testing.T) {
	for length := 0; length < 8; length++ {
		if _, err := Unpad(make([]byte, length)); !errors.Is(err, cerrors.ErrCorrupt) {
			t.Errorf("Unpad of %d bytes: expected ErrCorrupt, got %v", length, err)
		}
	}
}

func TestUnpadEmbeddedLengthTooLarge(t *testing.T) {
	padded, err := Pad([]byte("hello"), 16)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}

	// Overwrite the length prefix with a value larger than the buffer.
	for i := 0; i < 8; i++ {
		padded[i] = 0xff
	}

	if _, err := Unpad(padded); !errors.Is(err, cerrors.ErrCorrupt) {
		t.Errorf("Expected ErrCorrupt for oversized embedded length, got %v", err)
	}
}
