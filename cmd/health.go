package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errUnreachable makes `sohbet health` exit non-zero.
var errUnreachable = errors.New("backend unreachable")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend answers",
	Long: `Probes the backend's /health endpoint. Prints "ok" and exits 0 when it
answers in time, otherwise prints "unreachable" and exits 1.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	if newClient(env).HealthCheck(cmd.Context()) {
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "unreachable")
	return fmt.Errorf("%w: %s", errUnreachable, env.APIURL)
}
