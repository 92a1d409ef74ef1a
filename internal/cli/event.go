package cli

import (
	"github.com/spf13/cobra"
)

// turnEventBody matches the webhook JSON payload
type turnEventBody struct {
	GameID     string `json:"gameId,omitempty"`
	GameName   string `json:"gameName"`
	UserName   string `json:"userName"`
	Round      int    `json:"round"`
	CivName    string `json:"civName,omitempty"`
	LeaderName string `json:"leaderName,omitempty"`
}

func newEventCmd() *cobra.Command {
	var body turnEventBody

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Inject a test turn event",
		Long: `Posts a turn-change event to the webhook endpoint, as the upstream
game service would. Useful for verifying mapping and delivery without
waiting for a real turn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TurnEventResult

			if err := client.Post("/api/v1/webhook/turn", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&body.GameID, "game-id", "", "Upstream game id (defaults to game name)")
	cmd.Flags().StringVar(&body.GameName, "game", "", "Game display name")
	cmd.Flags().StringVar(&body.UserName, "player", "", "Upstream player name whose turn it is")
	cmd.Flags().IntVar(&body.Round, "round", 1, "Round number")
	cmd.Flags().StringVar(&body.CivName, "civ", "", "Civ name (optional flavor)")
	cmd.Flags().StringVar(&body.LeaderName, "leader", "", "Leader name (optional flavor)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}
