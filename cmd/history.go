package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/errors"
)

var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Print the messages of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	msgs, err := newClient(env).GetMessages(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", errors.UserMessage(err), err)
	}
	printHistory(cmd.OutOrStdout(), msgs)
	return nil
}

// printHistory writes each message as "[HH:MM] Sender: content".
func printHistory(w io.Writer, msgs []chat.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, chat.EmptyPreview)
		return
	}
	for _, m := range msgs {
		who := "Asistan"
		if m.IsUser() {
			who = "Sen"
		}
		content := strings.ReplaceAll(strings.TrimSpace(m.Content), "\n", "\n        ")
		fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Local().Format("15:04"), who, content)
	}
}
