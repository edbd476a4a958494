// ABOUTME: Root command for the shopctl CLI
// ABOUTME: Handles global flags and wires shared client/session plumbing

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/config"
	"github.com/dontuty123/shopctl/internal/session"
	"github.com/dontuty123/shopctl/internal/tui"
	"github.com/dontuty123/shopctl/internal/tui/debuglog"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command; running it with no subcommand opens the
// interactive storefront.
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Terminal client for the shop storefront",
	Long: `shopctl is a terminal client for the shop storefront API.

Run it without arguments for the interactive TUI, or use the
subcommands for scripting.

Environment Variables:
  SHOPCTL_API_URL     Storefront API URL
  SHOPCTL_TIMEOUT     Request timeout in seconds (default: 10)
  SHOPCTL_CONFIG_DIR  Session and log directory (default: XDG config)
  SHOPCTL_DEBUG       Write a debug log file when set to 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer debuglog.Close()
		return tui.Run(env.cfg, env.client, env.sessions)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Storefront API URL (overrides SHOPCTL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// env bundles the pieces every command needs
type env struct {
	cfg      *config.Config
	sessions *session.Service
	client   *client.Client
}

// newEnv loads config and constructs the session service and client
func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	if err := debuglog.Init(cfg.ConfigDir, cfg.Debug); err != nil {
		// A broken log file should not keep the client from running
		cfg.Debug = false
		_ = debuglog.Init("", false)
	}

	sessions := session.NewService(session.NewStore(cfg.ConfigDir))
	apiClient := client.New(cfg.APIURL, cfg.Timeout, sessions)
	return &env{cfg: cfg, sessions: sessions, client: apiClient}, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
