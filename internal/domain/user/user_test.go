package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "studia/internal/domain/user/value_objects"
)

func newEmail(t *testing.T, value string) *vo.Email {
	t.Helper()
	e, err := vo.NewEmail(value)
	require.NoError(t, err)
	return e
}

func newName(t *testing.T, value string) *vo.Name {
	t.Helper()
	n, err := vo.NewName(value)
	require.NoError(t, err)
	return n
}

func newActiveUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(newEmail(t, "alice@example.com"), newName(t, "Alice Martin"), "$2a$12$hash")
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newActiveUser(t)

	assert.Contains(t, u.SID(), "usr_")
	assert.Equal(t, RoleUser, u.Role())
	assert.True(t, u.CanLogin())
	assert.False(t, u.IsAdmin())
	assert.False(t, u.IsEmailVerified())
	require.NotNil(t, u.PasswordHash())
	assert.Nil(t, u.GoogleID())
}

func TestNewUser_Invalid(t *testing.T) {
	email := newEmail(t, "alice@example.com")
	name := newName(t, "Alice Martin")

	_, err := NewUser(nil, name, "hash")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = NewUser(email, nil, "hash")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewUser(email, name, "")
	assert.ErrorIs(t, err, ErrPasswordHashRequired)
}

func TestNewGoogleUser(t *testing.T) {
	u, err := NewGoogleUser(newEmail(t, "bob@example.com"), newName(t, "Bob Dupont"), "google-123")

	require.NoError(t, err)
	assert.True(t, u.IsEmailVerified(), "google identities arrive verified")
	assert.Nil(t, u.PasswordHash())
	require.NotNil(t, u.GoogleID())
	assert.Equal(t, "google-123", *u.GoogleID())
}

func TestLinkGoogleAccount(t *testing.T) {
	u := newActiveUser(t)

	require.NoError(t, u.LinkGoogleAccount("google-123"))
	assert.True(t, u.IsEmailVerified())

	require.NoError(t, u.LinkGoogleAccount("google-123"), "relinking the same account is a no-op")
	assert.ErrorIs(t, u.LinkGoogleAccount("google-456"), ErrGoogleAccountMismatch)
}

func TestVerifyEmail(t *testing.T) {
	u := newActiveUser(t)
	v := u.Version()

	u.VerifyEmail()
	assert.True(t, u.IsEmailVerified())
	assert.Greater(t, u.Version(), v)

	v = u.Version()
	u.VerifyEmail()
	assert.Equal(t, v, u.Version(), "verifying twice does not bump the version")
}

func TestSuspendAndReactivate(t *testing.T) {
	u := newActiveUser(t)

	require.NoError(t, u.Suspend())
	assert.False(t, u.CanLogin())

	require.NoError(t, u.Reactivate())
	assert.True(t, u.CanLogin())
}

func TestChangePasswordHash(t *testing.T) {
	u := newActiveUser(t)

	require.NoError(t, u.ChangePasswordHash("$2a$12$newhash"))
	assert.Equal(t, "$2a$12$newhash", *u.PasswordHash())

	assert.ErrorIs(t, u.ChangePasswordHash(""), ErrPasswordHashRequired)
}

func TestReconstructUser(t *testing.T) {
	email := newEmail(t, "alice@example.com")
	name := newName(t, "Alice Martin")

	u, err := ReconstructUser(UserReconstructParams{
		ID:      3,
		SID:     "usr_test1234567",
		Email:   email,
		Name:    name,
		Role:    RoleAdmin,
		Status:  vo.StatusActive,
		Version: 2,
	})

	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	_, err = ReconstructUser(UserReconstructParams{ID: 0, Email: email, Role: RoleUser})
	assert.Error(t, err)

	_, err = ReconstructUser(UserReconstructParams{ID: 1, Email: email, Role: Role("root")})
	assert.Error(t, err)
}
