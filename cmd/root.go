package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/attt/sohbet/internal/app"
	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/config"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/session"
)

var (
	debugMode             bool
	quietMode             bool
	apiURL                string
	noMock                bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "sohbet",
	Short: "ATTT Assistant terminal sohbet istemcisi",
	Long: `sohbet is a terminal client for the ATTT Assistant chat backend.
Conversations are kept as sessions on the backend; while the backend is
unreachable, replies come from a local offline responder.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides SOHBET_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&noMock, "no-mock", false, "Disable offline replies when the backend is unreachable")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("sohbet %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("sohbet %s\n", version)
}

// loadEnv reads the environment and applies the command-line overrides.
func loadEnv() (*config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		env.APIURL = apiURL
		if err := env.Validate(); err != nil {
			return nil, err
		}
	}
	if noMock {
		env.MockFallback = false
	}
	return env, nil
}

func newClient(env *config.Env) *backend.Client {
	return backend.New(backend.Options{
		BaseURL:        env.APIURL,
		SendTimeout:    env.SendTimeout,
		SessionTimeout: env.SessionTimeout,
		HealthTimeout:  env.HealthTimeout,
		Version:        version,
	})
}

// newReplier returns the offline responder, or nil when it is disabled.
func newReplier(env *config.Env) backend.Replier {
	if !env.MockFallback {
		return nil
	}
	return backend.NewMockReplier(env.MockMinDelay, env.MockMaxDelay)
}

func runTUI(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := logger.Init(env.LogPath); err != nil {
		return fmt.Errorf("error opening log: %w", err)
	}
	// Ensure logger is closed on exit
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger.WithComponent("cmd").Info("starting", "version", version, "apiURL", env.APIURL, "mock", env.MockFallback)

	m := app.New(app.Options{
		Backend: newClient(env),
		Replier: newReplier(env),
		Config:  cfg,
		Env:     env,
		Cache:   session.NewCache(),
		Version: version,
		Context: ctx,
	})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
