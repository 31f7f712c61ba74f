package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/collection"
	"github.com/bitfsorg/pioneers-go/config"
	"github.com/bitfsorg/pioneers-go/ledger"
	"github.com/bitfsorg/pioneers-go/state"
)

func (a *app) newInitCommand() *cobra.Command {
	var provenance string
	cmd := &cobra.Command{
		Use:   "init <base-uri>",
		Short: "Writes the config file and instantiates the collection with --sender as admin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}
			if _, err := config.LoadConfig(path); errors.Is(err, config.ErrConfigNotFound) {
				if err := config.SaveConfig(path, cfg); err != nil {
					return err
				}
			}

			return a.run(cmd, func(s *session) (interface{}, error) {
				msg := collection.InstantiateMsg{BaseTokenURI: args[0]}
				if provenance != "" {
					msg.ProvenanceHash = &provenance
				}
				resp, err := s.coll.Instantiate(s.env, s.info, msg)
				if err != nil {
					return nil, err
				}
				return viewResponse(resp), nil
			})
		},
	}
	cmd.Flags().StringVar(&provenance, "provenance", "", "initial provenance fingerprint")
	return cmd
}

func (a *app) newFundCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fund <address> <coins>",
		Short: "Credits coins to an account. For local devnets only.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coins, err := bank.ParseCoins(args[1])
			if err != nil {
				return err
			}
			return a.run(cmd, func(s *session) (interface{}, error) {
				var balances bank.Coins
				err := s.store.Update(func(tx state.Tx) error {
					if err := s.bank.Fund(tx, args[0], coins); err != nil {
						return err
					}
					var err error
					balances, err = s.bank.AllBalances(tx, args[0])
					return err
				})
				if err != nil {
					return nil, err
				}
				s.log.Info("account funded", zap.String("address", args[0]), zap.Stringer("coins", coins))
				return viewCoins(balances), nil
			})
		},
	}
}

// newExecuteCommands returns the commands that run one collection message
// as --sender with --funds attached.
func (a *app) newExecuteCommands() []*cobra.Command {
	mint := &cobra.Command{
		Use:   "mint [quantity]",
		Short: "Mints tokens to the sender. Quantity defaults to 1.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity := uint64(1)
			if len(args) == 1 {
				q, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid quantity %q: %w", args[0], err)
				}
				quantity = q
			}
			return a.run(cmd, func(s *session) (interface{}, error) {
				resp, err := s.coll.PublicBatchMint(s.env, s.info, quantity)
				if err != nil {
					return nil, err
				}
				return viewMint(resp), nil
			})
		},
	}

	cmds := []*cobra.Command{
		mint,
		a.simpleCommand("pause", "Pauses public minting.", 0, func(s *session, _ []string) (*collection.Response, error) {
			return s.coll.PauseMint(s.env, s.info)
		}),
		a.simpleCommand("unpause", "Resumes public minting.", 0, func(s *session, _ []string) (*collection.Response, error) {
			return s.coll.UnpauseMint(s.env, s.info)
		}),
		a.simpleCommand("update-base-uri <uri>", "Sets the base URI of future tokens.", 1, func(s *session, args []string) (*collection.Response, error) {
			return s.coll.UpdateBaseURI(s.env, s.info, args[0])
		}),
		a.simpleCommand("set-provenance <hash>", "Records the provenance fingerprint.", 1, func(s *session, args []string) (*collection.Response, error) {
			return s.coll.SetProvenanceHash(s.env, s.info, args[0])
		}),
		a.simpleCommand("withdraw", "Sends the contract's payment balance to the admin.", 0, func(s *session, _ []string) (*collection.Response, error) {
			return s.coll.Withdraw(s.env, s.info)
		}),
		a.simpleCommand("revoke <spender> <token-id>", "Removes a token approval.", 2, func(s *session, args []string) (*collection.Response, error) {
			return s.coll.Revoke(s.env, s.info, args[0], args[1])
		}),
		a.simpleCommand("revoke-all <operator>", "Removes an operator.", 1, func(s *session, args []string) (*collection.Response, error) {
			return s.coll.RevokeAll(s.env, s.info, args[0])
		}),
		a.simpleCommand("transfer <recipient> <token-id>", "Transfers a token.", 2, func(s *session, args []string) (*collection.Response, error) {
			return s.coll.TransferNft(s.env, s.info, args[0], args[1])
		}),
		a.simpleCommand("send <contract> <token-id> <msg>", "Sends a token to a contract with a message.", 3, func(s *session, args []string) (*collection.Response, error) {
			return s.coll.SendNft(s.env, s.info, args[0], args[1], []byte(args[2]))
		}),
	}

	var exp expirationFlags
	approve := a.simpleCommand("approve <spender> <token-id>", "Approves a spender for one token.", 2, func(s *session, args []string) (*collection.Response, error) {
		e, err := exp.expiration()
		if err != nil {
			return nil, err
		}
		return s.coll.Approve(s.env, s.info, args[0], args[1], e)
	})
	exp.register(approve)

	var allExp expirationFlags
	approveAll := a.simpleCommand("approve-all <operator>", "Approves an operator for all of the sender's tokens.", 1, func(s *session, args []string) (*collection.Response, error) {
		e, err := allExp.expiration()
		if err != nil {
			return nil, err
		}
		return s.coll.ApproveAll(s.env, s.info, args[0], e)
	})
	allExp.register(approveAll)

	return append(cmds, approve, approveAll)
}

func (a *app) simpleCommand(use, short string, nargs int, fn func(s *session, args []string) (*collection.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *session) (interface{}, error) {
				resp, err := fn(s, args)
				if err != nil {
					return nil, err
				}
				return viewResponse(resp), nil
			})
		},
	}
}

type expirationFlags struct {
	cmd    *cobra.Command
	height uint64
	at     string
}

func (f *expirationFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().Uint64Var(&f.height, "expires-height", 0, "block height the grant expires at")
	cmd.Flags().StringVar(&f.at, "expires-time", "", "RFC 3339 time the grant expires at")
}

func (f *expirationFlags) expiration() (ledger.Expiration, error) {
	byHeight := f.cmd.Flags().Changed("expires-height")
	byTime := f.cmd.Flags().Changed("expires-time")
	switch {
	case byHeight && byTime:
		return ledger.Expiration{}, errors.New("--expires-height and --expires-time are mutually exclusive")
	case byHeight:
		return ledger.AtHeight(f.height), nil
	case byTime:
		t, err := time.Parse(time.RFC3339, f.at)
		if err != nil {
			return ledger.Expiration{}, fmt.Errorf("invalid --expires-time: %w", err)
		}
		return ledger.AtTime(t), nil
	default:
		return ledger.Never(), nil
	}
}
