// ABOUTME: Auth commands: login, register, logout
// ABOUTME: Scriptable session management outside the TUI

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

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/tui/debuglog"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	Long: `Authenticate against the storefront API and persist the session
for later commands and the TUI.

Exit codes:
  0 - Logged in
  1 - Credentials rejected
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, false)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and persist the session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, true)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear persisted state",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)

	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&loginEmail, "email", "", "Account email")
		c.Flags().StringVar(&loginPassword, "password", "", "Account password")
		c.MarkFlagRequired("email")
		c.MarkFlagRequired("password")
	}
}

// runLogin executes login or register and returns an exit code
func runLogin(ctx context.Context, w io.Writer, register bool) int {
	e, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer debuglog.Close()

	creds := client.Credentials{Email: loginEmail, Password: loginPassword}

	var email string
	if register {
		p, err := e.client.Register(ctx, creds)
		if err != nil {
			return reportAuthError(w, err)
		}
		email = p.Email
	} else {
		p, err := e.client.Login(ctx, creds)
		if err != nil {
			return reportAuthError(w, err)
		}
		email = p.Email
	}

	if IsJSONOutput() {
		data, _ := json.Marshal(map[string]string{"email": email, "status": "ok"})
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", email)
	}
	return 0
}

func runLogout(ctx context.Context, w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer debuglog.Close()

	if !e.sessions.Current().IsAuthenticated {
		fmt.Fprintln(w, "Not logged in")
		return 0
	}
	if err := e.client.Logout(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Logged out")
	return 0
}

// reportAuthError prints a rejected-credentials message with any
// per-field details the server sent
func reportAuthError(w io.Writer, err error) int {
	if entity := client.AsEntityError(err); entity != nil {
		fmt.Fprintf(w, "Rejected: %v\n", entity)
		for field, msg := range entity.Fields {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
