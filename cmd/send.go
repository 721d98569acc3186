package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/errors"
	"github.com/attt/sohbet/internal/logger"
)

var sendSessionID string

var sendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send one message and print the reply",
	Long: `Sends a single message to the backend and prints the assistant's reply
followed by the session it belongs to. Without --session the backend opens a
new session. When the backend is unreachable an offline reply is printed
instead, unless --no-mock is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendSessionID, "session", "s", "", "Session to send the message in")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("message text is empty")
	}

	env, err := loadEnv()
	if err != nil {
		return err
	}

	res, usedMock, err := backend.SendWithFallback(cmd.Context(), newClient(env), newReplier(env), text, sendSessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.UserMessage(err), err)
	}
	logger.WithSession(res.SessionID).Debug("cli send done", "mock", usedMock)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Message.Content)
	fmt.Fprintln(out)
	if usedMock {
		fmt.Fprintln(out, "(çevrimdışı yanıt)")
	}
	fmt.Fprintf(out, "oturum: %s\n", res.SessionID)
	return nil
}
