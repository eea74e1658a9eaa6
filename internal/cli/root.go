package cli

import (
	"github.com/spf13/cobra"
)

const programName = "netmon"

// NewRootCmd builds the netmon command tree. version is printed by the
// version subcommand.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           programName,
		Short:         "A simple network stability monitoring tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newVersionCmd(version), newRTTCmd())
	return root
}
