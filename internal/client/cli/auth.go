package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/watchb/internal/client/validation"
	"github.com/dmitrijs2005/watchb/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for a username, an email, and a password, validates them
// the way the sign-up form does, and attempts to create an account.
//
// The email is checked locally for shape and against the server for
// availability; the password must satisfy the server's pattern rule. Both
// checks are repeated server-side on submit. The password byte slice is
// securely wiped before returning. On success the user is told to log in;
// registration does not start a session.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if res := validation.CheckEmailPattern(email); !res.IsValid {
		printlnFn(res.Message)
		return nil
	}
	if res, err := validation.CheckEmailAvailable(ctx, a.api, email); err != nil {
		log.Printf("email check failed: %v", err)
		return err
	} else if !res.IsValid {
		printlnFn(res.Message)
		return nil
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if res := validation.CheckPasswordPattern(string(password)); !res.IsValid {
		printlnFn(res.Message)
		return nil
	}

	if _, err := a.users.Register(ctx, username, email, string(password)); err != nil {
		log.Printf("registration failed: %v", err)
		return err
	}

	printlnFn("Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and authenticates.
//
// On success the auth manager commits the access token, schedules the
// proactive refresh, and publishes the profile to the session store; the
// prompt picks the username up from there. The password is securely wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Invalid email or password.")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.store.Snapshot().User.Username))
	return nil
}

// Logout revokes the refresh cookie server-side and resets the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Expire(ctx); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the current profile from the session store. No request is
// made; the store is the source of truth for the rendered session.
func (a *App) WhoAmI(ctx context.Context) error {
	state := a.store.Snapshot()
	if !state.IsAuthenticated {
		printlnFn("Not logged in.")
		return common.ErrNotLoggedIn
	}

	u := state.User
	printlnFn(fmt.Sprintf("Username:   %s", u.Username))
	printlnFn(fmt.Sprintf("Email:      %s", u.Email))
	printlnFn(fmt.Sprintf("Visibility: %s", u.Visibility))
	if u.Profile != "" {
		printlnFn(fmt.Sprintf("Bio:        %s", u.Profile))
	}
	if u.Avatar != "" {
		printlnFn(fmt.Sprintf("Avatar:     %s", u.Avatar))
	}
	if u.Background != "" {
		printlnFn(fmt.Sprintf("Background: %s", u.Background))
	}
	printlnFn(fmt.Sprintf("Joined:     %s", u.DateJoined.Format("2006-01-02")))
	return nil
}
