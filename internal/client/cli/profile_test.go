package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/watchb/internal/client/models"
	"github.com/dmitrijs2005/watchb/internal/client/session"
	"github.com/dmitrijs2005/watchb/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore()
	store.SetToken("tok")
	store.SetUserFull(models.User{
		ID:         1,
		Username:   "alice",
		Email:      "alice@example.org",
		Profile:    "old bio",
		Visibility: "public",
	})
	store.MarkLoggedIn()
	return store
}

func stubMultiline(t *testing.T, text string) func() {
	t.Helper()
	orig := getMultiline
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	return func() { getMultiline = orig }
}

func TestEditProfile_SendsOnlyChangedFields(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{}
	a := &App{users: fu, store: loggedInStore(t)}

	// username changed, visibility kept (empty answer)
	restoreIn := stubInputs(t, []string{"alice2", ""}, nil)
	defer restoreIn()
	restoreML := stubMultiline(t, "")
	defer restoreML()

	require.NoError(t, a.EditProfile(context.Background()))

	require.NotNil(t, fu.lastUpdate.Username)
	assert.Equal(t, "alice2", *fu.lastUpdate.Username)
	assert.Nil(t, fu.lastUpdate.Profile)
	assert.Nil(t, fu.lastUpdate.Visibility)
}

func TestEditProfile_NothingToChange(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{updateErr: errors.New("should not be called")}
	a := &App{users: fu, store: loggedInStore(t)}

	restoreIn := stubInputs(t, []string{"", ""}, nil)
	defer restoreIn()
	restoreML := stubMultiline(t, "")
	defer restoreML()

	require.NoError(t, a.EditProfile(context.Background()))
}

func TestEditProfile_NotLoggedIn(t *testing.T) {
	muteOutput(t)

	a := &App{store: session.NewStore()}
	err := a.EditProfile(context.Background())
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestChangeEmail_Success(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{}
	a := &App{users: fu, api: &fakeSearchAPI{}, store: loggedInStore(t)}

	restore := stubInputs(t, []string{"new@example.org"}, []byte("abc12345"))
	defer restore()

	require.NoError(t, a.ChangeEmail(context.Background()))
	assert.Equal(t, "new@example.org", fu.emailNew)
	assert.Equal(t, "abc12345", fu.emailCurr)
}

func TestChangeEmail_WrongPassword(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{emailErr: common.ErrWrongPassword}
	a := &App{users: fu, api: &fakeSearchAPI{}, store: loggedInStore(t)}

	restore := stubInputs(t, []string{"new@example.org"}, []byte("wrong"))
	defer restore()

	err := a.ChangeEmail(context.Background())
	require.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestChangeEmail_BadEmailSkipsRequest(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{}
	a := &App{users: fu, api: &fakeSearchAPI{}, store: loggedInStore(t)}

	restore := stubInputs(t, []string{"not-an-email"}, []byte("abc12345"))
	defer restore()

	require.NoError(t, a.ChangeEmail(context.Background()))
	assert.Empty(t, fu.emailNew)
}

func TestChangePassword_Success(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{}
	a := &App{users: fu}

	// getPassword returns the same bytes for both prompts; good enough to
	// verify plumbing.
	restore := stubInputs(t, nil, []byte("abc12345"))
	defer restore()

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Equal(t, "abc12345", fu.passCurr)
	assert.Equal(t, "abc12345", fu.passNew)
}

func TestChangePassword_WeakNewPasswordSkipsRequest(t *testing.T) {
	muteOutput(t)

	fu := &fakeUsers{}
	a := &App{users: fu}

	restore := stubInputs(t, nil, []byte("abcdefgh"))
	defer restore()

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Empty(t, fu.passCurr)
}
