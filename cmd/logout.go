// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"authly/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for ending the session.
// The remote logout is best-effort: local credentials are always cleared,
// even when the API is unreachable or rejects the call.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and remove the stored token",
	Long: `The logout command ends the current session. It notifies the Authly API so
the session token is invalidated server-side (best-effort), then removes the
stored token, its timestamp, and the cached user from this machine.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		svc, cleanup, err := newAuthService()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.Logout(ctx); err != nil {
			// Local state is already cleared; only the remote call failed.
			pterm.Warning.Println(logging.PresentError("The API could not be notified; the session was cleared locally", err))
			return nil
		}

		pterm.Success.Println("Logged out. All local credentials have been removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
