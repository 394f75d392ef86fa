// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Authly CLI.
// It implements subcommands for account sign-up, login, logout, and session
// inspection using the Cobra framework, and owns all terminal presentation:
// interactive credential prompts, spinners while a session check is in
// flight, and rendering gated on the reduced auth state.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "authly",
	Short:         "Authly CLI for session management against the Authly API",
	Long:          `Authly is a command-line client for the Authly authentication API. It manages the local session: sign up, log in, log out, and check who is currently authenticated.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("authly %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
}
