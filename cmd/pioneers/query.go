package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"lukechampine.com/uint128"

	"github.com/bitfsorg/pioneers-go/bank"
	"github.com/bitfsorg/pioneers-go/state"
)

func (a *app) newQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read-only collection queries.",
	}

	var includeExpired bool
	ownerOf := a.queryCommand("owner-of <token-id>", "Shows the owner and approvals of a token.", 1, func(s *session, args []string) (interface{}, error) {
		resp, err := s.coll.OwnerOf(s.env, args[0], includeExpired)
		if err != nil {
			return nil, err
		}
		return viewOwner(resp), nil
	})
	ownerOf.Flags().BoolVar(&includeExpired, "include-expired", false, "include expired approvals")

	var (
		startAfter string
		limit      uint32
	)
	tokens := a.queryCommand("tokens <owner>", "Lists token ids owned by an account.", 1, func(s *session, args []string) (interface{}, error) {
		return s.coll.Tokens(args[0], startAfter, limit)
	})
	tokens.Flags().StringVar(&startAfter, "start-after", "", "return ids after this one")
	tokens.Flags().Uint32Var(&limit, "limit", 0, "page size (default 10, max 1000)")

	cmd.AddCommand(
		a.queryCommand("config", "Shows the collection configuration.", 0, func(s *session, _ []string) (interface{}, error) {
			resp, err := s.coll.GetConfig()
			if err != nil {
				return nil, err
			}
			return viewConfig(resp), nil
		}),
		a.queryCommand("royalty <token-id> <sale-price>", "Quotes the royalty on a sale.", 2, func(s *session, args []string) (interface{}, error) {
			price, err := uint128.FromString(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid sale price %q: %w", args[1], err)
			}
			resp, err := s.coll.RoyaltyInfo(args[0], price)
			if err != nil {
				return nil, err
			}
			return royaltyView{Address: resp.Address, RoyaltyAmount: resp.RoyaltyAmount.String()}, nil
		}),
		a.queryCommand("num-tokens", "Shows the number of tokens minted.", 0, func(s *session, _ []string) (interface{}, error) {
			return s.coll.NumTokens()
		}),
		a.queryCommand("nft-info <token-id>", "Shows the metadata URI of a token.", 1, func(s *session, args []string) (interface{}, error) {
			return s.coll.NftInfo(args[0])
		}),
		a.queryCommand("contract-info", "Shows the collection name and symbol.", 0, func(s *session, _ []string) (interface{}, error) {
			return s.coll.ContractInfo()
		}),
		a.queryCommand("version", "Shows the contract name and version.", 0, func(s *session, _ []string) (interface{}, error) {
			return s.coll.ContractVersion()
		}),
		a.queryCommand("balance <address>", "Shows every balance held by an account.", 1, func(s *session, args []string) (interface{}, error) {
			var coins bank.Coins
			err := s.store.View(func(tx state.Tx) error {
				var err error
				coins, err = s.bank.AllBalances(tx, args[0])
				return err
			})
			if err != nil {
				return nil, err
			}
			return viewCoins(coins), nil
		}),
		ownerOf,
		tokens,
	)
	return cmd
}

func (a *app) queryCommand(use, short string, nargs int, fn func(s *session, args []string) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *session) (interface{}, error) {
				return fn(s, args)
			})
		},
	}
}
