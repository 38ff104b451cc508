package validation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/watchb/internal/client/api"
	"github.com/dmitrijs2005/watchb/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPasswordPattern(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "letters and digits", password: "abc12345", want: true},
		{name: "letters only", password: "abcdefgh", want: false},
		{name: "digits only", password: "12345678", want: false},
		{name: "letters and specials", password: "abcd!@#$", want: true},
		{name: "digits and specials", password: "1234!@#$", want: true},
		{name: "too short", password: "a1!", want: false},
		{name: "empty", password: "", want: false},
		{name: "non-ascii counts as special", password: "abcd하하하하", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPasswordPattern(tt.password)
			assert.Equal(t, tt.want, got.IsValid)
			if !tt.want {
				assert.NotEmpty(t, got.Message)
			}
		})
	}
}

func TestCheckEmailPattern(t *testing.T) {
	assert.True(t, CheckEmailPattern("a@b.co").IsValid)
	assert.True(t, CheckEmailPattern("a+tag@b.example.com").IsValid)
	assert.False(t, CheckEmailPattern("not-an-email").IsValid)
	assert.False(t, CheckEmailPattern("a@b").IsValid)
	assert.False(t, CheckEmailPattern("a b@c.d").IsValid)
}

type fakeSearcher struct {
	api.Client

	Users []models.User
	Err   error
}

func (f *fakeSearcher) SearchUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	return f.Users, f.Err
}

func TestCheckEmailAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("free email", func(t *testing.T) {
		res, err := CheckEmailAvailable(ctx, &fakeSearcher{}, "new@x.y")
		require.NoError(t, err)
		assert.True(t, res.IsValid)
	})

	t.Run("taken email", func(t *testing.T) {
		f := &fakeSearcher{Users: []models.User{{ID: 1, Email: "used@x.y"}}}
		res, err := CheckEmailAvailable(ctx, f, "used@x.y")
		require.NoError(t, err)
		assert.False(t, res.IsValid)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("server-side format rejection is invalid, not an error", func(t *testing.T) {
		f := &fakeSearcher{Err: &api.Error{
			Status: http.StatusBadRequest,
			Fields: map[string][]string{"email": {"Enter a valid email address."}},
		}}
		res, err := CheckEmailAvailable(ctx, f, "broken@")
		require.NoError(t, err)
		assert.False(t, res.IsValid)
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		f := &fakeSearcher{Err: errors.New("connection refused")}
		_, err := CheckEmailAvailable(ctx, f, "a@b.co")
		require.Error(t, err)
	})
}
