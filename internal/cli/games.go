package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Tracked game commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesEndCmd())
	cmd.AddCommand(newGamesHistoryCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games awaiting a turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActiveGamesResult

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamesEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <game-id>",
		Short: "Remove a finished game from tracking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", url.PathEscape(gameID))); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Removed tracking for game %s", gameID))
			return nil
		},
	}
}

func newGamesHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <game-id>",
		Short: "Show recorded turn durations for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result TurnHistoryResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/history", url.PathEscape(gameID)), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
