// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"authly/cli/internal/auth"
	"authly/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var verboseStatus bool

// statusCmd represents the status command for inspecting the auth state.
// It subscribes to the state store, runs a session check, and prints both
// the transition and the final reduced state. Useful for debugging and for
// seeing the unidirectional data flow in action.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the full authentication state",
	Long: `The status command runs a session check and prints the resulting auth state:
whether the check has resolved, whether a session is established, and who
owns it. With --verbose, state transitions are printed as they are dispatched.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if verboseStatus {
			pterm.EnableDebugMessages()
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		svc, cleanup, err := newAuthService()
		if err != nil {
			return err
		}
		defer cleanup()

		unsubscribe := svc.Store().Subscribe(func(s auth.State) {
			if s.LoggedIn {
				pterm.Debug.Println("state → authenticated as " + s.CurrentUser.Label())
			} else {
				pterm.Debug.Println("state → not authenticated")
			}
		})
		defer unsubscribe()

		_, checkErr := svc.CheckAuth(ctx)
		state := svc.Store().State()

		items := []pterm.BulletListItem{
			{Level: 0, Text: "API:          " + cfg.APIBaseURL},
			{Level: 0, Text: "Auth checked: " + yesNo(state.Checked)},
			{Level: 0, Text: "Logged in:    " + yesNo(state.LoggedIn)},
		}
		if state.LoggedIn {
			items = append(items, pterm.BulletListItem{Level: 0, Text: "User:         " + state.CurrentUser.Label()})
		}
		if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
			return err
		}

		if checkErr != nil && !state.LoggedIn {
			notLoggedInHint()
		}
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVarP(&verboseStatus, "verbose", "v", false, "Print state transitions as they are dispatched")
}
