// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"time"

	"authly/cli/internal/backend"
	"authly/cli/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// loginCmd represents the login command for establishing a session.
// If a valid session already exists it short-circuits; otherwise it prompts
// for credentials and authenticates against the Authly API.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Log in with your email and password",
	Long: `The login command establishes a session with the Authly API. It prompts for an
email address and a password, submits them, and on success stores the issued
session token locally. The session is valid for 30 minutes from login.

If a valid session already exists, the command skips the prompt.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		svc, cleanup, err := newAuthService()
		if err != nil {
			return err
		}
		defer cleanup()

		// If already logged in with a valid token, short-circuit.
		if user, err := svc.CheckAuth(ctx); err == nil {
			pterm.Info.Println("Already logged in as " + user.Label())
			return nil
		}

		creds, err := promptCredentials()
		if err != nil {
			return err
		}

		stopSpinner := startInlineSpinner(cmd.OutOrStdout(), "Logging in", spinnerFrames, 120*time.Millisecond)
		user, err := svc.Login(ctx, creds)
		stopSpinner()

		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) {
				msg := apiErr.Message()
				if msg == "" {
					msg = "invalid email or password"
				}
				pterm.Error.Println("Login failed: " + msg)
				return err
			}
			return httperrors.FormatNetworkError(err, "login")
		}

		pterm.Success.Println("Welcome back, " + user.Label() + "!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
