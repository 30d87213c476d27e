// Command adminctl holds operator tasks for the portfolio API: hashing the
// admin password and seeding the project collection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Operator tools for the portfolio API",
		Long: `Operator tools for the portfolio API.

Available subcommands:
  hash-password  - Print a bcrypt hash for ADMIN_PASSWORD_HASH
  seed-projects  - Insert the bundled project list into MongoDB`,
		SilenceUsage: true,
	}
	root.AddCommand(newHashPasswordCmd(), newSeedProjectsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
