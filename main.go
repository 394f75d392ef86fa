// Package main is the entry point for the Authly CLI application.
// It provides client-side session management against the Authly API.
package main

import (
	"authly/cli/cmd"
)

func main() {
	cmd.Execute()
}
