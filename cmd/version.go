package cmd

import (
	"fmt"

	"github.com/rnwolfe/siptrackr/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print siptrackr version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(_ *cobra.Command, _ []string) error {
	if versionShort {
		fmt.Println(version.Short())
		return nil
	}
	fmt.Printf("siptrackr %s\n", version.Full())
	fmt.Println(version.Runtime())
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
