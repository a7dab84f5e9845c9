package cli

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the tool schema as JSON",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = cmd.OutOrStdout().Write([]byte(polynorm.MCPToolSpec() + "\n"))
		},
	}
}
