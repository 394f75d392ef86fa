// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"authly/cli/internal/httperrors"

	"atomicgo.dev/cursor"
	"github.com/spf13/cobra"
)

// whoamiCmd represents the whoami command for displaying the current session.
// It validates the stored token against the Authly API and shows the account
// that owns the session. When the API is unreachable it falls back to the
// locally cached identity from the last successful check.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show current authenticated account",
	Long: `The whoami command displays the account that owns the current session. It
validates the stored token with the Authly API; a token older than 30 minutes
is treated as absent and the check resolves to not-logged-in.

When the API cannot be reached, the last cached identity is shown instead,
clearly marked as unverified.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		svc, cleanup, err := newAuthService()
		if err != nil {
			return err
		}
		defer cleanup()

		cursor.Hide()
		stopSpinner := startInlineSpinner(cmd.OutOrStdout(), "Checking your session", spinnerFrames, 120*time.Millisecond)
		user, err := svc.CheckAuth(ctx)
		stopSpinner()
		cursor.Show()

		if err == nil {
			fmt.Printf("👤 Current user: %s\n", user.Label())
			return nil
		}

		if httperrors.IsNetworkError(err) {
			// Offline: show the last known identity without claiming a session.
			if cached, cerr := svc.LastKnownUser(ctx); cerr == nil {
				fmt.Printf("👤 Last known user: %s (offline, unverified)\n", cached.Label())
				return nil
			}
			return httperrors.FormatNetworkError(err, "session check")
		}

		notLoggedInHint()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
