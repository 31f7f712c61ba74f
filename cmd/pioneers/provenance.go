package main

import (
	"github.com/spf13/cobra"

	"github.com/bitfsorg/pioneers-go/provenance"
)

func newProvenanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provenance",
		Short: "Computes and checks provenance fingerprints of asset files.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "compute <file>...",
			Short: "Prints the fingerprint of the files in the given order.",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hash, err := provenance.ComputeFiles(args)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), fingerprintView{ProvenanceHash: hash, Assets: len(args)})
			},
		},
		&cobra.Command{
			Use:   "verify <hash> <file>...",
			Short: "Checks that the files match a fingerprint.",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := provenance.VerifyFiles(args[0], args[1:]); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), fingerprintView{ProvenanceHash: args[0], Assets: len(args) - 1})
			},
		},
	)
	return cmd
}
