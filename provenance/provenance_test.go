package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doubleSHA(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

func TestCompute(t *testing.T) {
	assets := [][]byte{[]byte("pioneer #1"), []byte("pioneer #2"), {}}

	var combined []byte
	for _, a := range assets {
		combined = append(combined, doubleSHA(a)...)
	}
	want := hex.EncodeToString(doubleSHA(combined))

	got, err := Compute(assets)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 64)
}

func TestCompute_OrderMatters(t *testing.T) {
	a, err := Compute([][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)
	b, err := Compute([][]byte{[]byte("b"), []byte("a")})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompute_NoAssets(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrNoAssets)
}

func TestComputeFiles(t *testing.T) {
	dir := t.TempDir()
	var contents [][]byte
	var files []string
	for _, name := range []string{"1.json", "2.json"} {
		data := []byte(`{"name":"` + name + `"}`)
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, data, 0o600))
		files = append(files, p)
		contents = append(contents, data)
	}

	want, err := Compute(contents)
	require.NoError(t, err)
	got, err := ComputeFiles(files)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ComputeFiles([]string{filepath.Join(dir, "missing.json")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ComputeFiles(nil)
	assert.ErrorIs(t, err, ErrNoAssets)

	assert.NoError(t, VerifyFiles(want, files))
	assert.ErrorIs(t, VerifyFiles(want, files[:1]), ErrMismatch)
}

func TestVerify(t *testing.T) {
	assets := [][]byte{[]byte("x"), []byte("y")}
	hash, err := Compute(assets)
	require.NoError(t, err)

	tests := []struct {
		name    string
		hash    string
		assets  [][]byte
		wantErr error
	}{
		{"match", hash, assets, nil},
		{"upper case", strings.ToUpper(hash), assets, nil},
		{"changed asset", hash, [][]byte{[]byte("x"), []byte("z")}, ErrMismatch},
		{"not hex", "zz", assets, ErrInvalidHash},
		{"short", hash[:62], assets, ErrInvalidHash},
		{"no assets", hash, nil, ErrNoAssets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.hash, tt.assets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
