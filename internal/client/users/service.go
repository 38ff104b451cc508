// Package users is the profile mutation gateway: every operation reads the
// authenticated user id from the session store, issues exactly one request,
// and on success merges only the fields that were part of the request payload
// back into the store. Response bodies are never merged wholesale, so stale
// response data can not overwrite unrelated fields.
package users

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/watchb/internal/client/api"
	"github.com/dmitrijs2005/watchb/internal/client/session"
	"github.com/dmitrijs2005/watchb/internal/common"
)

// ProfileUpdate carries the editable, non-sensitive profile fields. Nil
// fields are left out of the request.
type ProfileUpdate struct {
	Username   *string
	Profile    *string
	Visibility *string
}

// Service defines the account/profile operations used by the CLI.
type Service interface {
	Register(ctx context.Context, username, email, password string) (api.SignUpResult, error)
	Update(ctx context.Context, upd ProfileUpdate) error
	ChangeEmail(ctx context.Context, newEmail, currPassword string) error
	ChangePassword(ctx context.Context, currPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, filename string, r io.Reader) error
	UpdateBackground(ctx context.Context, filename string, r io.Reader) error
	DeleteAvatar(ctx context.Context) error
	DeleteBackground(ctx context.Context) error
}

type service struct {
	api   api.Client
	store *session.Store
}

// NewService constructs a Service bound to the given API client and store.
func NewService(apiClient api.Client, store *session.Store) Service {
	return &service{api: apiClient, store: store}
}

func (s *service) currentUserID() (int64, error) {
	cred := s.store.Snapshot()
	if !cred.IsAuthenticated {
		return 0, common.ErrNotLoggedIn
	}
	return cred.User.ID, nil
}

// Register creates a new account. It needs no session and writes nothing to
// the store; the caller logs in separately.
func (s *service) Register(ctx context.Context, username, email, password string) (api.SignUpResult, error) {
	res, err := s.api.SignUp(ctx, username, email, password)
	if err != nil {
		return api.SignUpResult{}, fmt.Errorf("sign up: %w", err)
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, upd ProfileUpdate) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	err = s.api.PatchUser(ctx, id, api.UserPatchRequest{
		Username:   upd.Username,
		Profile:    upd.Profile,
		Visibility: upd.Visibility,
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.store.SetUser(session.UserPatch{
		Username:   upd.Username,
		Profile:    upd.Profile,
		Visibility: upd.Visibility,
	})
	return nil
}

// ChangeEmail requires the current password (server-side rule for sensitive
// changes). On success only the email field is merged back.
func (s *service) ChangeEmail(ctx context.Context, newEmail, currPassword string) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	err = s.api.PatchUser(ctx, id, api.UserPatchRequest{
		Email:        &newEmail,
		CurrPassword: &currPassword,
	})
	if err != nil {
		return fmt.Errorf("change email: %w", err)
	}

	s.store.SetUser(session.UserPatch{Email: &newEmail})
	return nil
}

// ChangePassword updates nothing in the store: no password material is ever
// held client-side.
func (s *service) ChangePassword(ctx context.Context, currPassword, newPassword string) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	err = s.api.PatchUser(ctx, id, api.UserPatchRequest{
		CurrPassword: &currPassword,
		NewPassword:  &newPassword,
	})
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *service) UpdateAvatar(ctx context.Context, filename string, r io.Reader) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	url, err := s.api.UploadAvatar(ctx, id, filename, r)
	if err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}

	s.store.SetUser(session.UserPatch{Avatar: &url})
	return nil
}

func (s *service) UpdateBackground(ctx context.Context, filename string, r io.Reader) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	url, err := s.api.UploadBackground(ctx, id, filename, r)
	if err != nil {
		return fmt.Errorf("upload background: %w", err)
	}

	s.store.SetUser(session.UserPatch{Background: &url})
	return nil
}

func (s *service) DeleteAvatar(ctx context.Context) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	if err := s.api.DeleteAvatar(ctx, id); err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}

	s.store.SetUser(session.UserPatch{Avatar: common.Ptr("")})
	return nil
}

func (s *service) DeleteBackground(ctx context.Context) error {
	id, err := s.currentUserID()
	if err != nil {
		return err
	}

	if err := s.api.DeleteBackground(ctx, id); err != nil {
		return fmt.Errorf("delete background: %w", err)
	}

	s.store.SetUser(session.UserPatch{Background: common.Ptr("")})
	return nil
}
