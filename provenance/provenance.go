// Package provenance computes the fingerprint that binds a collection to
// its ordered asset set.
//
// Each asset is hashed with double SHA-256, the digests are concatenated in
// asset order, and the concatenation is hashed again the same way. The
// fingerprint is the lowercase hex of that final digest in natural byte
// order.
package provenance

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bsv-blockchain/go-sdk/chainhash"
)

var (
	// ErrNoAssets indicates an empty asset list.
	ErrNoAssets = errors.New("provenance: no assets")

	// ErrMismatch indicates a fingerprint does not match the assets.
	ErrMismatch = errors.New("provenance: fingerprint mismatch")

	// ErrInvalidHash indicates a fingerprint that is not 32 bytes of hex.
	ErrInvalidHash = errors.New("provenance: invalid fingerprint")
)

// Compute returns the fingerprint of assets. Order matters.
func Compute(assets [][]byte) (string, error) {
	if len(assets) == 0 {
		return "", ErrNoAssets
	}
	combined := make([]byte, 0, len(assets)*chainhash.HashSize)
	for _, a := range assets {
		h := chainhash.DoubleHashH(a)
		combined = append(combined, h[:]...)
	}
	root := chainhash.DoubleHashH(combined)
	return hex.EncodeToString(root[:]), nil
}

// ComputeFiles reads the files at paths in order and returns their
// fingerprint.
func ComputeFiles(paths []string) (string, error) {
	assets, err := readFiles(paths)
	if err != nil {
		return "", err
	}
	return Compute(assets)
}

// VerifyFiles checks that hash is the fingerprint of the files at paths.
func VerifyFiles(hash string, paths []string) error {
	assets, err := readFiles(paths)
	if err != nil {
		return err
	}
	return Verify(hash, assets)
}

func readFiles(paths []string) ([][]byte, error) {
	assets := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("provenance: read asset: %w", err)
		}
		assets = append(assets, data)
	}
	return assets, nil
}

// Verify checks that hash is the fingerprint of assets. Hex case is ignored.
func Verify(hash string, assets [][]byte) error {
	raw, err := hex.DecodeString(hash)
	if err != nil || len(raw) != chainhash.HashSize {
		return fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	got, err := Compute(assets)
	if err != nil {
		return err
	}
	if got != strings.ToLower(hash) {
		return fmt.Errorf("%w: have %s, computed %s", ErrMismatch, hash, got)
	}
	return nil
}
