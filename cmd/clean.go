package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/attt/sohbet/internal/config"
	"github.com/attt/sohbet/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove local preferences and log files",
	Long: `Removes the preferences file (last open session, notification and layout
settings) and the debug logs. Sessions stored on the backend are not touched.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("error locating config: %w", err)
	}
	return runCleanWith(cmd.InOrStdin(), cmd.OutOrStdout(), cfgPath, env.LogPath)
}

// runCleanWith allows injecting the streams and paths for testing
func runCleanWith(input io.Reader, out io.Writer, cfgPath, logPath string) error {
	_, statErr := os.Stat(cfgPath)
	hasConfig := statErr == nil

	fmt.Fprintln(out, "This will clean:")
	if hasConfig {
		fmt.Fprintf(out, "  - preferences in %s\n", cfgPath)
	}
	fmt.Fprintln(out, "  - log files")

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if hasConfig {
		if err := os.Remove(cfgPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing config: %w", err)
		}
	}

	logsCleared, err := logger.ClearLogs(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	// Print results
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if hasConfig {
		fmt.Fprintln(out, "  - preferences removed")
	}
	fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
