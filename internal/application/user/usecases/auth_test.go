package usecases

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/application/billing/testutil"
	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
	apperrors "studia/internal/shared/errors"
)

// fakeHasher reverses no bytes; it just tags the input.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Verify(hashed, plain string) error {
	if hashed != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type fakeJWT struct{}

func (fakeJWT) Generate(userSID, role string) (*TokenPair, error) {
	return &TokenPair{AccessToken: "access-" + userSID, RefreshToken: "refresh-" + userSID, ExpiresIn: 900}, nil
}
func (fakeJWT) Refresh(refreshToken string) (*TokenPair, error) {
	return &TokenPair{AccessToken: "access-new", RefreshToken: refreshToken, ExpiresIn: 900}, nil
}

type fakeOAuth struct {
	profile *GoogleProfile
	err     error
}

func (f fakeOAuth) AuthCodeURL(state string) string { return "https://accounts.test/auth?state=" + state }
func (f fakeOAuth) ExchangeProfile(ctx context.Context, code string) (*GoogleProfile, error) {
	return f.profile, f.err
}

func TestRegisterWithPassword(t *testing.T) {
	users := testutil.NewMockUserRepository()
	uc := NewRegisterWithPasswordUseCase(users, fakeHasher{}, fakeJWT{}, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), RegisterWithPasswordCommand{
		Email:    "alice@example.com",
		Name:     "Alice Martin",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.Contains(t, result.User.SID, "usr_")
	assert.NotEmpty(t, result.Tokens.AccessToken)

	stored, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:Str0ng!pass", *stored.PasswordHash())
}

func TestRegisterWithPassword_DuplicateEmail(t *testing.T) {
	users := testutil.NewMockUserRepository()
	uc := NewRegisterWithPasswordUseCase(users, fakeHasher{}, fakeJWT{}, testutil.NewMockLogger())
	cmd := RegisterWithPasswordCommand{Email: "alice@example.com", Name: "Alice Martin", Password: "Str0ng!pass"}

	_, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), cmd)
	assert.Error(t, err)
}

func TestRegisterWithPassword_WeakPasswordRejected(t *testing.T) {
	uc := NewRegisterWithPasswordUseCase(testutil.NewMockUserRepository(), fakeHasher{}, fakeJWT{}, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), RegisterWithPasswordCommand{
		Email: "alice@example.com", Name: "Alice Martin", Password: "short",
	})

	assert.Error(t, err)
}

func TestLoginWithPassword(t *testing.T) {
	users := testutil.NewMockUserRepository()
	reg := NewRegisterWithPasswordUseCase(users, fakeHasher{}, fakeJWT{}, testutil.NewMockLogger())
	_, err := reg.Execute(context.Background(), RegisterWithPasswordCommand{
		Email: "alice@example.com", Name: "Alice Martin", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	uc := NewLoginWithPasswordUseCase(users, fakeHasher{}, fakeJWT{}, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), LoginWithPasswordCommand{
		Email: "alice@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)

	_, err = uc.Execute(context.Background(), LoginWithPasswordCommand{
		Email: "alice@example.com", Password: "wrong",
	})
	require.Error(t, err)
	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Code)
	assert.Equal(t, apperrors.ErrorTypeInvalidCredentials, authErr.Type)
	assert.True(t, apperrors.IsSecurityEvent(err), "failed logins feed abuse monitoring")

	_, err = uc.Execute(context.Background(), LoginWithPasswordCommand{
		Email: "ghost@example.com", Password: "Str0ng!pass",
	})
	require.Error(t, err, "unknown email fails with the same generic error")
	var ghostErr *apperrors.AuthError
	require.ErrorAs(t, err, &ghostErr)
	assert.Equal(t, authErr.Message, ghostErr.Message, "lookup and verify failures must be indistinguishable")
}

func TestHandleGoogleCallback_CreatesLinksAndReuses(t *testing.T) {
	users := testutil.NewMockUserRepository()
	log := testutil.NewMockLogger()
	profile := &GoogleProfile{ID: "google-1", Email: "bob@example.com", Name: "Bob Dupont"}
	uc := NewHandleGoogleCallbackUseCase(users, fakeOAuth{profile: profile}, fakeJWT{}, log)

	// First sign-in creates the account.
	result, err := uc.Execute(context.Background(), HandleGoogleCallbackCommand{Code: "code"})
	require.NoError(t, err)
	created, err := users.GetByGoogleID(context.Background(), "google-1")
	require.NoError(t, err)
	assert.Equal(t, result.User.SID, created.SID())

	// Second sign-in reuses it.
	again, err := uc.Execute(context.Background(), HandleGoogleCallbackCommand{Code: "code"})
	require.NoError(t, err)
	assert.Equal(t, result.User.SID, again.User.SID)
}

func TestHandleGoogleCallback_LinksExistingEmailAccount(t *testing.T) {
	users := testutil.NewMockUserRepository()
	email, err := vo.NewEmail("carol@example.com")
	require.NoError(t, err)
	name, err := vo.NewName("Carol Petit")
	require.NoError(t, err)
	existing, err := user.NewUser(email, name, "hashed:pw")
	require.NoError(t, err)
	users.AddUser(existing)

	profile := &GoogleProfile{ID: "google-2", Email: "carol@example.com", Name: "Carol Petit"}
	uc := NewHandleGoogleCallbackUseCase(users, fakeOAuth{profile: profile}, fakeJWT{}, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), HandleGoogleCallbackCommand{Code: "code"})

	require.NoError(t, err)
	assert.Equal(t, existing.SID(), result.User.SID)
	require.NotNil(t, existing.GoogleID())
	assert.Equal(t, "google-2", *existing.GoogleID())
}
