// Package api is the HTTP binding to the WatchB REST API.
//
// The concrete client owns a cookie jar (the HTTP-only refresh-token cookie
// and the csrftoken cookie live there, the application never reads them), a
// mutable default bearer token, and the CSRF double-submit contract: the
// csrftoken cookie is echoed back as the X-CSRFToken header on every
// state-changing request.
package api

import (
	"context"
	"io"

	"github.com/dmitrijs2005/watchb/internal/client/models"
)

// SignUpResult is the response of account creation.
type SignUpResult struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserPatchRequest is a partial PATCH of /api/users/{id}/. Nil fields are
// omitted from the request body. Sensitive changes (email, new password)
// require CurrPassword.
type UserPatchRequest struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Profile      *string `json:"profile,omitempty"`
	Visibility   *string `json:"visibility,omitempty"`
	CurrPassword *string `json:"curr_password,omitempty"`
	NewPassword  *string `json:"new_password,omitempty"`
}

// Client defines the operations of the WatchB API consumed by the services.
//
// All methods honor context cancellation. Methods never retry; failures are
// returned as *Error (HTTP-level) or as transport errors.
type Client interface {
	// SetBearerToken replaces the default Authorization header value used
	// for subsequent requests. An empty string removes the header.
	SetBearerToken(token string)

	// SignUp creates an account.
	SignUp(ctx context.Context, username, email, password string) (SignUpResult, error)

	// ObtainTokenPair exchanges credentials for an access token. The refresh
	// token arrives as an HTTP-only cookie and stays in the jar.
	ObtainTokenPair(ctx context.Context, email, password string) (access string, err error)

	// RefreshTokenPair mints a new access token from the ambient refresh
	// cookie. The request has no body.
	RefreshTokenPair(ctx context.Context) (access string, err error)

	// ExpireRefreshToken revokes the refresh cookie server-side.
	ExpireRefreshToken(ctx context.Context) error

	// GetUser fetches one user object.
	GetUser(ctx context.Context, id int64) (models.User, error)

	// SearchUsersByEmail lists users matching the given email exactly.
	SearchUsersByEmail(ctx context.Context, email string) ([]models.User, error)

	// PatchUser applies a partial update to the user.
	PatchUser(ctx context.Context, id int64, patch UserPatchRequest) error

	// UploadAvatar uploads an avatar image as multipart form data and
	// returns the stored image URL. UploadBackground is the same for the
	// background image.
	UploadAvatar(ctx context.Context, id int64, filename string, r io.Reader) (string, error)
	UploadBackground(ctx context.Context, id int64, filename string, r io.Reader) (string, error)

	// DeleteAvatar / DeleteBackground remove the stored image.
	DeleteAvatar(ctx context.Context, id int64) error
	DeleteBackground(ctx context.Context, id int64) error

	// GetMovie fetches one movie detail object.
	GetMovie(ctx context.Context, id int64) (models.Movie, error)
}
