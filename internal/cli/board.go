package cli

import (
	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Leaderboard commands",
	}

	cmd.AddCommand(newBoardShowCmd())
	cmd.AddCommand(newBoardResetCmd())

	return cmd
}

func newBoardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the ranked leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBoardResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all leaderboard entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/leaderboard"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Leaderboard cleared")
			return nil
		},
	}
}
