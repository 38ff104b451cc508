package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/watchb/internal/client/users"
	"github.com/dmitrijs2005/watchb/internal/client/validation"
	"github.com/dmitrijs2005/watchb/internal/common"
)

// EditProfile interactively updates the non-sensitive profile fields.
//
// Each prompt shows the current value; an empty answer keeps it. Only the
// fields the user actually changed are sent, so concurrent edits to other
// fields are not clobbered.
func (a *App) EditProfile(ctx context.Context) error {
	state := a.store.Snapshot()
	if !state.IsAuthenticated {
		printlnFn("Not logged in.")
		return common.ErrNotLoggedIn
	}

	var upd users.ProfileUpdate

	username, err := getSimpleText(a.reader, "Username ["+state.User.Username+"] (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if username != "" && username != state.User.Username {
		upd.Username = &username
	}

	bio, err := getMultiline(a.reader, "Bio (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if bio != "" && bio != state.User.Profile {
		upd.Profile = &bio
	}

	visibility, err := getSimpleText(a.reader, "Visibility ["+state.User.Visibility+"] (public/private, empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if visibility != "" && visibility != state.User.Visibility {
		upd.Visibility = &visibility
	}

	if upd.Username == nil && upd.Profile == nil && upd.Visibility == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	if err := a.users.Update(ctx, upd); err != nil {
		log.Printf("profile update failed: %v", err)
		return err
	}

	printlnFn("Profile updated.")
	return nil
}

// ChangeEmail prompts for a new email and the current password, then submits
// the change. The email is validated locally and checked for availability
// before the password prompt, so obvious mistakes fail early.
func (a *App) ChangeEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter new email", os.Stdout)
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

	password, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.users.ChangeEmail(ctx, email, string(password)); err != nil {
		if errors.Is(err, common.ErrWrongPassword) {
			printlnFn("Wrong password.")
		} else {
			log.Printf("email change failed: %v", err)
		}
		return err
	}

	printlnFn("Email changed.")
	return nil
}

// ChangePassword prompts for the current and a new password and submits the
// change. The new password must satisfy the server's pattern rule. Neither
// password is written to the session store.
func (a *App) ChangePassword(ctx context.Context) error {
	curr, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(curr)

	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(next)

	if res := validation.CheckPasswordPattern(string(next)); !res.IsValid {
		printlnFn(res.Message)
		return nil
	}

	if err := a.users.ChangePassword(ctx, string(curr), string(next)); err != nil {
		if errors.Is(err, common.ErrWrongPassword) {
			printlnFn("Wrong password.")
		} else {
			log.Printf("password change failed: %v", err)
		}
		return err
	}

	printlnFn("Password changed.")
	return nil
}
