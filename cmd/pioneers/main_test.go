package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/pioneers-go/collection"
	"github.com/bitfsorg/pioneers-go/config"
	"github.com/bitfsorg/pioneers-go/ledger"
	"github.com/bitfsorg/pioneers-go/provenance"
)

const (
	admin = "paxi1admin"
	alice = "paxi1alice"
	bob   = "paxi1bob"
)

type cli struct {
	t       *testing.T
	dataDir string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dataDir: t.TempDir()}
}

// exec runs the root command with args and returns stdout.
func (c *cli) exec(args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--datadir", c.dataDir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustExec(v interface{}, args ...string) {
	c.t.Helper()
	out, err := c.exec(args...)
	require.NoError(c.t, err, "pioneers %v", args)
	if v != nil {
		require.NoError(c.t, json.Unmarshal([]byte(out), v), out)
	}
}

func TestCLI_MintLifecycle(t *testing.T) {
	c := newCLI(t)

	var resp responseView
	c.mustExec(&resp, "--sender", admin, "init", "ipfs://x/")
	assert.Equal(t, collection.Attribute{Key: "action", Value: "instantiate"}, resp.Attributes[0])
	_, err := os.Stat(config.ConfigPath(c.dataDir))
	assert.NoError(t, err, "init writes the config file")

	var balances []coinView
	c.mustExec(&balances, "fund", alice, "100000000upaxi,5uatom")
	assert.Equal(t, []coinView{{Denom: "uatom", Amount: "5"}, {Denom: "upaxi", Amount: "100000000"}}, balances)

	_, err = c.exec("--sender", alice, "--funds", "20000000upaxi", "mint", "2")
	assert.ErrorIs(t, err, collection.ErrPaused)

	_, err = c.exec("--sender", alice, "unpause")
	assert.ErrorIs(t, err, collection.ErrUnauthorized)
	c.mustExec(nil, "--sender", admin, "unpause")

	c.mustExec(&resp, "--sender", alice, "--funds", "20000000upaxi", "mint", "2")
	assert.Equal(t, []string{"1", "2"}, resp.TokenIDs)

	var cfg configView
	c.mustExec(&cfg, "query", "config")
	assert.Equal(t, uint64(2), cfg.TotalMinted)
	assert.Equal(t, "10000000", cfg.Price)
	assert.Equal(t, "upaxi", cfg.Denom)
	assert.False(t, cfg.Paused)
	assert.Equal(t, admin, cfg.Admin)

	var nft ledger.NftInfoResponse
	c.mustExec(&nft, "query", "nft-info", "2")
	assert.Equal(t, "ipfs://x/2", nft.TokenURI)

	var royalty royaltyView
	c.mustExec(&royalty, "query", "royalty", "1", "1000000")
	assert.Equal(t, royaltyView{Address: admin, RoyaltyAmount: "75000"}, royalty)

	c.mustExec(&resp, "--sender", admin, "withdraw")
	require.Len(t, resp.Messages, 1)
	require.NotNil(t, resp.Messages[0].BankSend)
	assert.Equal(t, []coinView{{Denom: "upaxi", Amount: "20000000"}}, resp.Messages[0].BankSend.Amount)

	c.mustExec(&balances, "query", "balance", admin)
	assert.Equal(t, []coinView{{Denom: "upaxi", Amount: "20000000"}}, balances)

	var version collection.VersionInfo
	c.mustExec(&version, "query", "version")
	assert.Equal(t, collection.ContractVersion, version.Version)
}

func TestCLI_TransfersAndApprovals(t *testing.T) {
	c := newCLI(t)
	c.mustExec(nil, "--sender", admin, "init", "ipfs://x/")
	c.mustExec(nil, "--sender", admin, "unpause")
	c.mustExec(nil, "fund", alice, "10000000upaxi")
	c.mustExec(nil, "--sender", alice, "--funds", "10000000upaxi", "mint")

	c.mustExec(nil, "--sender", alice, "approve", bob, "1", "--expires-height", "50")

	var owner ownerView
	c.mustExec(&owner, "query", "owner-of", "1")
	require.Len(t, owner.Approvals, 1)
	assert.Equal(t, bob, owner.Approvals[0].Spender)

	_, err := c.exec("--sender", bob, "--height", "60", "transfer", bob, "1")
	assert.ErrorIs(t, err, ledger.ErrNotOwner)

	c.mustExec(nil, "--sender", bob, "--height", "10", "transfer", bob, "1")
	c.mustExec(&owner, "query", "owner-of", "1")
	assert.Equal(t, bob, owner.Owner)

	var tokens ledger.TokensResponse
	c.mustExec(&tokens, "query", "tokens", bob)
	assert.Equal(t, []string{"1"}, tokens.Tokens)

	_, err = c.exec("--sender", bob, "approve", alice, "1", "--expires-height", "5", "--expires-time", "2030-01-01T00:00:00Z")
	assert.Error(t, err)

	_, err = c.exec("--sender", bob, "approve", alice, "1", "--expires-height", "0")
	assert.ErrorIs(t, err, ledger.ErrExpired)
}

func TestCLI_Provenance(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"1.json", "2.json"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o600))
		files = append(files, p)
	}
	want, err := provenance.ComputeFiles(files)
	require.NoError(t, err)

	c := newCLI(t)
	var fp fingerprintView
	c.mustExec(&fp, append([]string{"provenance", "compute"}, files...)...)
	assert.Equal(t, fingerprintView{ProvenanceHash: want, Assets: 2}, fp)

	c.mustExec(nil, append([]string{"provenance", "verify", want}, files...)...)
	_, err = c.exec("provenance", "verify", want, files[1], files[0])
	assert.ErrorIs(t, err, provenance.ErrMismatch)

	c.mustExec(nil, "--sender", admin, "init", "ipfs://x/", "--provenance", want)
	var cfg configView
	c.mustExec(&cfg, "query", "config")
	require.NotNil(t, cfg.ProvenanceHash)
	assert.Equal(t, want, *cfg.ProvenanceHash)
}

func TestCLI_InvalidInput(t *testing.T) {
	c := newCLI(t)
	c.mustExec(nil, "--sender", admin, "init", "ipfs://x/")

	_, err := c.exec("--sender", alice, "--funds", "lots", "mint")
	assert.Error(t, err)

	_, err = c.exec("--sender", alice, "mint", "two")
	assert.Error(t, err)

	_, err = c.exec("query", "royalty", "1", "-5")
	assert.Error(t, err)

	_, err = c.exec("--log-level", "chatty", "query", "config")
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}
