package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangeEmail(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	SetAvatar(ctx context.Context) error
	SetBackground(ctx context.Context) error
	DeleteAvatar(ctx context.Context) error
	DeleteBackground(ctx context.Context) error
	ShowMovie(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the WatchB CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - movie <id>     — show movie details
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — show the current profile
//	  - profile        — edit username, bio, visibility
//	  - email          — change the account email
//	  - password       — change the account password
//	  - avatar         — upload an avatar image
//	  - background     — upload a background image
//	  - delavatar      — remove the avatar
//	  - delbackground  — remove the background
//	  - movie <id>     — show movie details
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wb> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, email, password, avatar, background, delavatar, delbackground, movie <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, movie <id>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "email":
			_ = a.ChangeEmail(ctx)

		case "password":
			_ = a.ChangePassword(ctx)

		case "avatar":
			_ = a.SetAvatar(ctx)

		case "background":
			_ = a.SetBackground(ctx)

		case "delavatar":
			_ = a.DeleteAvatar(ctx)

		case "delbackground":
			_ = a.DeleteBackground(ctx)

		case "movie":
			if len(args) == 0 {
				printlnFn("Usage: movie <id>")
				continue
			}
			_ = a.ShowMovie(ctx, args[0])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
