package repository

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/calvra/cellar/internal/crypto"
	cerrors "github.com/calvra/cellar/internal/errors"
	"github.com/calvra/cellar/internal/vcs"
)

// HeaderRelativePath is the reserved entry name of the encryption header
// inside every repository.
const HeaderRelativePath = ".header"

const headerCommitMessage = "Update encryption header contents."

// HeaderParams are the key-derivation parameters recorded for a fresh
// repository. Existing repositories always use the parameters persisted in
// their header file.
type HeaderParams struct {
	KeySize               int
	WorkFactor            int
	ParallelizationFactor int
}

// DefaultHeaderParams returns the production defaults.
func DefaultHeaderParams() HeaderParams {
	return HeaderParams{
		KeySize:               crypto.DefaultKeySize,
		WorkFactor:            crypto.DefaultWorkFactor,
		ParallelizationFactor: crypto.DefaultParallelizationFactor,
	}
}

// headerRecord is the on-disk TOML shape of the encryption header. The
// salt is stored base64-encoded. Unknown fields in the file are ignored
// but carried through rewrites, so forward reads of future fields do not
// break and a rewrite does not discard them.
type headerRecord struct {
	KeySalt                  string `toml:"key_salt"`
	KeySizeOctets            int    `toml:"key_size_octets"`
	KeyWorkFactor            int    `toml:"key_work_factor"`
	KeyParallelizationFactor int    `toml:"key_parallelization_factor"`
}

var headerRecordKeys = []string{
	"key_salt", "key_size_octets", "key_work_factor", "key_parallelization_factor",
}

// EncryptionHeader owns the persisted per-repository parameter block that
// makes key derivation reproducible. It is loaded (or defaulted, with a
// fresh salt) when the repository handle is constructed, and flushed and
// committed when the handle is released.
type EncryptionHeader struct {
	path   string // absolute path of the header file
	record headerRecord
	extra  map[string]interface{} // unrecognized fields, re-emitted on write
	salt   []byte                 // decoded salt cached for the session
	loaded []byte                 // serialized bytes as last observed on disk
}

// openHeader loads the header file under workDir, filling missing fields
// with defaults. An absent or empty file produces a default header with a
// fresh random salt.
func openHeader(workDir string, defaults HeaderParams) (*EncryptionHeader, error) {
	h := &EncryptionHeader{path: filepath.Join(workDir, HeaderRelativePath)}

	raw, err := os.ReadFile(h.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read encryption header: %w", err)
	}

	if len(raw) > 0 {
		if err := toml.Unmarshal(raw, &h.record); err != nil {
			return nil, fmt.Errorf("failed to parse encryption header: %w", err)
		}

		var all map[string]interface{}
		if err := toml.Unmarshal(raw, &all); err != nil {
			return nil, fmt.Errorf("failed to parse encryption header: %w", err)
		}
		for _, key := range headerRecordKeys {
			delete(all, key)
		}
		if len(all) > 0 {
			h.extra = all
		}

		h.loaded = raw
	}

	if h.record.KeySizeOctets == 0 {
		h.record.KeySizeOctets = defaults.KeySize
	}
	if h.record.KeyWorkFactor == 0 {
		h.record.KeyWorkFactor = defaults.WorkFactor
	}
	if h.record.KeyParallelizationFactor == 0 {
		h.record.KeyParallelizationFactor = defaults.ParallelizationFactor
	}
	if h.record.KeySalt == "" {
		salt, err := crypto.GenerateSalt(crypto.DefaultSaltSize)
		if err != nil {
			return nil, err
		}
		h.record.KeySalt = base64.StdEncoding.EncodeToString(salt)
	}

	h.salt, err = base64.StdEncoding.DecodeString(h.record.KeySalt)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed header salt: %v", cerrors.ErrCorrupt, err)
	}

	return h, nil
}

// Salt returns a copy of the repository key salt.
func (h *EncryptionHeader) Salt() []byte {
	salt := make([]byte, len(h.salt))
	copy(salt, h.salt)
	return salt
}

// KeySize returns the derived master key length in octets.
func (h *EncryptionHeader) KeySize() int {
	return h.record.KeySizeOctets
}

// WorkFactor returns the scrypt cost parameter N.
func (h *EncryptionHeader) WorkFactor() int {
	return h.record.KeyWorkFactor
}

// ParallelizationFactor returns the scrypt p parameter.
func (h *EncryptionHeader) ParallelizationFactor() int {
	return h.record.KeyParallelizationFactor
}

func (h *EncryptionHeader) serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(h.record); err != nil {
		return nil, fmt.Errorf("failed to serialize encryption header: %w", err)
	}
	// Unrecognized fields from older or newer writers survive a rewrite.
	// The encoder sorts map keys, so the output stays byte-stable.
	if len(h.extra) > 0 {
		if err := toml.NewEncoder(&buf).Encode(h.extra); err != nil {
			return nil, fmt.Errorf("failed to serialize encryption header: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// verifySalt re-reads the header file and fails when its salt differs from
// the one cached at open. A changed salt would invalidate every entry in
// the repository, so this is fatal for the session.
func (h *EncryptionHeader) verifySalt() error {
	raw, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to re-read encryption header: %w", err)
	}

	var onDisk headerRecord
	if err := toml.Unmarshal(raw, &onDisk); err != nil {
		return fmt.Errorf("failed to parse encryption header: %w", err)
	}
	if onDisk.KeySalt != "" && onDisk.KeySalt != h.record.KeySalt {
		return cerrors.ErrSaltChanged
	}
	return nil
}

// close flushes the header to disk and commits it. Both the write and the
// commit are skipped when the serialized bytes are unchanged, so a clean
// shutdown of an untouched repository creates no commit object.
func (h *EncryptionHeader) close(backend vcs.Backend) error {
	if err := h.verifySalt(); err != nil {
		return err
	}

	serialized, err := h.serialize()
	if err != nil {
		return err
	}
	if bytes.Equal(serialized, h.loaded) {
		return nil
	}

	if err := os.WriteFile(h.path, serialized, 0600); err != nil {
		return fmt.Errorf("failed to write encryption header: %w", err)
	}
	h.loaded = serialized

	if err := backend.Stage(HeaderRelativePath); err != nil {
		return err
	}
	return backend.Commit(headerCommitMessage)
}
