package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/errors"
)

// sessionTitleWidth bounds the title column of `sohbet sessions`.
const sessionTitleWidth = 40

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List chat sessions stored on the backend",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	list, err := newClient(env).ListSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s: %w", errors.UserMessage(err), err)
	}
	printSessions(cmd.OutOrStdout(), list, time.Now())
	return nil
}

// printSessions writes one row per session: id, favorite star, title and
// relative update time.
func printSessions(w io.Writer, list []chat.ChatSession, now time.Time) {
	if len(list) == 0 {
		fmt.Fprintln(w, "Henüz sohbet geçmişi yok")
		return
	}

	idWidth := 0
	for _, s := range list {
		idWidth = max(idWidth, runewidth.StringWidth(s.ID))
	}
	for _, s := range list {
		star := " "
		if s.IsFavorite {
			star = "★"
		}
		title := runewidth.FillRight(chat.Truncate(s.Title, sessionTitleWidth), sessionTitleWidth+3)
		line := fmt.Sprintf("%s  %s %s  %s",
			runewidth.FillRight(s.ID, idWidth),
			star,
			title,
			chat.RelativeDate(s.UpdatedAt, now),
		)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
