package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/adapters/progress"
	"github.com/trebuchet-org/nftops/internal/app"
	"github.com/trebuchet-org/nftops/internal/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipsAppInit lists commands that run without a project
var skipsAppInit = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"tasks":      true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nftops",
		Short: "Deploy and operate NFT contracts compiled with Hardhat",
		Long: `nftops deploys the NFT contract suite from Hardhat artifacts, records
every deployment under deployments/<env>/<network>, and verifies the
sources on the network's block explorer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsAppInit[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(cmd))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().StringP("env", "e", "", "Deployment environment (defaults to 'develop')")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., localhost, mumbai, matic)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this duration (default 10m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{NewDeployCmd(), NewVerifyCmd(), NewPlanCmd(), NewSignCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{NewListCmd(), NewShowCmd(), NewStatusCmd(), NewPublishCmd()} {
		c.GroupID = "deployment"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{NewTasksCmd(), NewNetworksCmd(), NewAccountsCmd(), NewConfigCmd()} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink picks the spinner for humans and stays silent for scripts
func newProgressSink(cmd *cobra.Command) usecase.ProgressSink {
	if flagBool(cmd, "json") || flagBool(cmd, "non-interactive") {
		return usecase.NopProgress{}
	}
	return progress.NewSpinnerProgressReporter()
}

func flagBool(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Value.String() == "true"
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// stopProgress stops a running spinner before results are printed
func stopProgress(a *app.App) {
	if s, ok := a.Progress.(interface{ Stop() time.Duration }); ok {
		s.Stop()
	}
}
