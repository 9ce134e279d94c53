package root

import (
	"github.com/spf13/cobra"

	"github.com/solverkit/cpengine/cmd/queens"

	"github.com/solverkit/cpengine/cmd/tasks"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cpengine",
		Short: "Cpengine is an open-source constraint programming engine",
		Long: `An open-source finite-domain constraint propagation engine written in Go.
For more information visit https://github.com/solverkit/cpengine`,
	}

	// add sub-commands
	rootCmd.AddCommand(queens.NewQueensCommand())
	rootCmd.AddCommand(tasks.NewTasksCommand())

	return rootCmd
}
