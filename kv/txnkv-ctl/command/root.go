package command

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns the txnkv-ctl command tree.
func NewRootCommand() *cobra.Command {
	flags := &CommandFlags{}
	root := &cobra.Command{
		Use:               "txnkv-ctl",
		Short:             "txnkv store control tool",
		SilenceUsage:      true,
		PersistentPreRunE: checkFormat,
	}
	flags.AddFlags(root.PersistentFlags())
	root.AddCommand(
		NewRawCommand(),
		NewTxnCommand(),
		NewRegionCommand(),
		NewStoreCommand(),
		NewLogCommand(),
		NewBenchCommand(),
		NewShellCommand(),
	)
	return root
}
