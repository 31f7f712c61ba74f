package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/collection"
	"github.com/bitfsorg/pioneers-go/config"
	"github.com/bitfsorg/pioneers-go/host"
	"github.com/bitfsorg/pioneers-go/logutil"
	"github.com/bitfsorg/pioneers-go/state"
)

// app holds the global flags shared by every command.
type app struct {
	configPath string
	dataDir    string
	logLevel   string
	sender     string
	funds      string
	height     uint64

	now func() time.Time
}

// session is an open state database with a collection over it.
type session struct {
	cfg   config.Config
	store *state.BoltStore
	log   *zap.Logger
	coll  *collection.Collection
	bank  *bank.Bank
	env   host.Env
	info  host.MessageInfo
}

func (s *session) close() {
	_ = s.log.Sync()
	if err := s.store.Close(); err != nil {
		s.log.Warn("failed to close state database", zap.Error(err))
	}
}

func newRootCommand() *cobra.Command {
	a := &app{now: func() time.Time { return time.Now().UTC() }}

	cmd := &cobra.Command{
		Use:           "pioneers",
		Short:         "Paxi Pioneers collection commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (default <datadir>/config)")
	cmd.PersistentFlags().StringVar(&a.dataDir, "datadir", "", "data directory (default ~/.pioneers)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the config file")
	cmd.PersistentFlags().StringVar(&a.sender, "sender", "", "identity executing the message")
	cmd.PersistentFlags().StringVar(&a.funds, "funds", "", "coins attached to the message, e.g. 20000000upaxi")
	cmd.PersistentFlags().Uint64Var(&a.height, "height", 1, "block height the message executes at")

	cmd.AddCommand(
		a.newInitCommand(),
		a.newFundCommand(),
	)
	cmd.AddCommand(a.newExecuteCommands()...)
	cmd.AddCommand(
		a.newQueryCommand(),
		newProvenanceCommand(),
	)
	return cmd
}

// loadConfig resolves the config file and applies flag overrides. A missing
// file yields the defaults.
func (a *app) loadConfig() (config.Config, string, error) {
	dataDir := a.dataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	path := a.configPath
	if path == "" {
		path = config.ConfigPath(dataDir)
	}

	cfg, err := config.LoadConfig(path)
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.DefaultConfig()
		cfg.DataDir = dataDir
	} else if err != nil {
		return config.Config{}, "", err
	}

	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

func (a *app) open() (*session, error) {
	cfg, _, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	funds, err := bank.ParseCoins(a.funds)
	if err != nil {
		return nil, err
	}

	log, err := logutil.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	store, err := state.OpenBoltStore(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("contract", cfg.ContractAddress))

	return &session{
		cfg:   cfg,
		store: store,
		log:   log,
		coll:  collection.New(store, collection.WithLogger(log)),
		bank:  bank.New(),
		env: host.Env{
			Block: host.BlockInfo{
				Height:  a.height,
				Time:    a.now(),
				ChainID: cfg.ChainID,
			},
			ContractAddress: cfg.ContractAddress,
		},
		info: host.MessageInfo{Sender: a.sender, Funds: funds},
	}, nil
}

// run opens a session, calls fn and prints its result as JSON.
func (a *app) run(cmd *cobra.Command, fn func(s *session) (interface{}, error)) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	defer s.close()

	out, err := fn(s)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
