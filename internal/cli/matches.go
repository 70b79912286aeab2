package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newMatchesCmd() *cobra.Command {
	var room string
	var limit int

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List recently finished matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches"
			if room != "" {
				path = fmt.Sprintf("/api/v1/rooms/%s/matches", url.PathEscape(room))
			}
			if limit > 0 {
				path += fmt.Sprintf("?limit=%d", limit)
			}

			var result MatchList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Only matches played in this room")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of matches to return")

	return cmd
}
