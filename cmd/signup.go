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

// signupCmd represents the signup command for creating a new account.
// It prompts for credentials, creates the account on the Authly API, and
// establishes a session: on success the returned token is stored locally
// and subsequent commands run authenticated.
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account and log in",
	Long: `The signup command creates a new account on the Authly API. It prompts for an
email address and a password, submits them, and on success stores the issued
session token locally. The session is valid for 30 minutes from sign-up.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		svc, cleanup, err := newAuthService()
		if err != nil {
			return err
		}
		defer cleanup()

		creds, err := promptCredentials()
		if err != nil {
			return err
		}

		stopSpinner := startInlineSpinner(cmd.OutOrStdout(), "Creating your account", spinnerFrames, 120*time.Millisecond)
		user, err := svc.SignUp(ctx, creds)
		stopSpinner()

		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) {
				msg := apiErr.Message()
				if msg == "" {
					msg = "sign-up was rejected"
				}
				pterm.Error.Println("Could not create the account: " + msg)
				return err
			}
			return httperrors.FormatNetworkError(err, "sign-up")
		}

		pterm.Success.Println("Account created! You're logged in as " + user.Label())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
}
