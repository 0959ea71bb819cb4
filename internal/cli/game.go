package cli

import (
	"github.com/spf13/cobra"
)

func newRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll",
		Short: "Roll the dice",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RollResult

			if err := client.Post("/api/v1/game/roll", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game",
		Short: "Show the current hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HandState

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newExitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "End the play session and record the score",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ExitResult

			if err := client.Post("/api/v1/game/exit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
