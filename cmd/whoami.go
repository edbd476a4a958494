// ABOUTME: Whoami command showing the current session's profile
// ABOUTME: Reads the server-side profile, not just the cached copy

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dontuty123/shopctl/internal/session"
	"github.com/dontuty123/shopctl/internal/tui/debuglog"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user's profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami fetches and prints the profile, returning an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer debuglog.Close()

	if !e.sessions.Current().IsAuthenticated {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	profile, err := e.client.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, formatProfile(profile))
	}
	return 0
}

func formatProfile(p *session.Profile) string {
	out := fmt.Sprintf("Email:   %s\n", p.Email)
	if p.Name != "" {
		out += fmt.Sprintf("Name:    %s\n", p.Name)
	}
	if p.Phone != "" {
		out += fmt.Sprintf("Phone:   %s\n", p.Phone)
	}
	if p.Address != "" {
		out += fmt.Sprintf("Address: %s\n", p.Address)
	}
	if p.Avatar != "" {
		out += fmt.Sprintf("Avatar:  %s\n", p.Avatar)
	}
	return out
}
