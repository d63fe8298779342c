package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/supportchat/internal/history"
)

func newRecentCmd(c *cli) *cobra.Command {
	var (
		clearAll bool
		remove   string
		favorite string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened conversations",
		Long: `List the conversations opened with 'chat' or 'conversation', most
recent first. Entries can be used in place of a conversation ID.

` + history.ListAliases(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.DefaultStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case clearAll:
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Recent conversations cleared.")
				return nil
			case remove != "":
				id, err := c.resolveConversation(remove)
				if err != nil {
					return err
				}
				if err := store.Remove(id); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed conversation %d.\n", id)
				return nil
			case favorite != "":
				id, err := c.resolveConversation(favorite)
				if err != nil {
					return err
				}
				fav, err := store.ToggleFavorite(id)
				if err != nil {
					return err
				}
				if fav {
					fmt.Fprintf(out, "★ Conversation %d marked as favorite.\n", id)
				} else {
					fmt.Fprintf(out, "Conversation %d is no longer a favorite.\n", id)
				}
				return nil
			}

			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recent conversations.")
				return nil
			}
			for i, e := range entries {
				star := " "
				if e.Favorite {
					star = "★"
				}
				fmt.Fprintf(out, "%s @%-3d %-8d %-24s %-10s %s\n",
					star, i+1, e.ID, e.Label(), e.Status, e.OpenedAt.Local().Format("Jan 2 3:04 PM"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent conversations")
	cmd.Flags().StringVar(&remove, "remove", "", "Forget one conversation")
	cmd.Flags().StringVar(&favorite, "favorite", "", "Toggle the favorite mark; favorites are never dropped")
	return cmd
}
