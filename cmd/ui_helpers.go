// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"authly/cli/internal/auth"
	"authly/cli/internal/backend"
	"authly/cli/internal/config"
	"authly/cli/internal/models"
	"authly/cli/internal/session"
	"authly/cli/internal/terminal"
	"authly/cli/internal/token"

	"golang.org/x/term"
)

// spinnerFrames is the stick-style animation used while a request is in flight.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The spinner clears its line when stopped.
// Returns a function that stops the spinner and cleans up when called.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// newAuthService wires the auth service from config: HTTP backend, token
// store (keychain with file fallback), fresh state store, and the offline
// session cache when it can be opened. The returned cleanup must be called
// when the command is done.
func newAuthService() (*auth.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	tokens, err := token.NewDefaultStore()
	if err != nil {
		return nil, nil, err
	}

	// The cache is optional; commands degrade gracefully without it.
	cache, err := session.OpenDefault()
	if err != nil {
		cache = nil
	}

	svc := auth.NewService(backend.New(cfg.APIBaseURL), tokens, auth.NewStore(), cache)
	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
	}
	return svc, cleanup, nil
}

// promptCredentials interactively reads the email and password.
// The password is read without echo; the prompt lines are cleared afterwards
// so credentials never linger on screen.
func promptCredentials() (models.Credentials, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return models.Credentials{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Credentials{}, fmt.Errorf("email must not be empty")
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return models.Credentials{}, err
	}
	if len(pw) == 0 {
		return models.Credentials{}, fmt.Errorf("password must not be empty")
	}

	terminal.ClearPreviousLines(len("Email: ") + len(email))

	return models.Credentials{Email: email, Password: string(pw)}, nil
}

// notLoggedInHint prints the standard hint for commands that need a session.
func notLoggedInHint() {
	fmt.Println("🔒 You're not logged in yet!")
	fmt.Println("   Run 'authly login' to get started.")
}
