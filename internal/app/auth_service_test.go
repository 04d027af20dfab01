//go:build unit
// +build unit

package app

import (
	"context"
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789"

func newAuthService(t *testing.T) (users.AuthService, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	svc, err := NewAuthService(repo, testSecret, time.Hour, testLogger())
	require.NoError(t, err)
	return svc, repo
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(newFakeUserRepo(), "", time.Hour, testLogger())
	assert.Error(t, err)
}

func TestAuthService_Register_SetsClearanceByRole(t *testing.T) {
	svc, _ := newAuthService(t)

	cases := []struct {
		role      users.Role
		clearance int
	}{
		{users.RoleAdmin, 5},
		{users.RoleAnalyst, 3},
		{users.RoleUser, 1},
	}

	for _, tc := range cases {
		user, err := svc.Register(context.Background(), "user-"+string(tc.role), string(tc.role)+"@example.com",
			"correct horse 7 battery", tc.role, "org-1")
		require.NoError(t, err)
		assert.Equal(t, tc.role, user.Role)
		assert.Equal(t, tc.clearance, user.ClearanceLevel)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "correct horse 7 battery", user.PasswordHash)
		assert.False(t, user.CreatedAt.IsZero())
	}
}

func TestAuthService_Register_DefaultsToUserRole(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), "plain", "plain@example.com", "a long password 42", "", "")
	require.NoError(t, err)
	assert.Equal(t, users.RoleUser, user.Role)
	assert.Equal(t, 1, user.ClearanceLevel)
}

func TestAuthService_Register_RejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "shorty", "shorty@example.com", "abc123defg4", users.RoleUser, "")
	assert.ErrorIs(t, err, users.ErrWeakPassword)
}

func TestAuthService_Register_RejectsPasswordWithoutDigits(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "letters", "letters@example.com", "onlylettershere", users.RoleUser, "")
	assert.ErrorIs(t, err, users.ErrWeakPassword)
}

func TestAuthService_Register_RejectsInvalidEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "noat", "not-an-email", "a long password 42", users.RoleUser, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, users.ErrWeakPassword)
}

func TestAuthService_Register_RejectsDuplicateUsernameAndEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "a long password 42", users.RoleUser, "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "a long password 42", users.RoleUser, "")
	assert.ErrorIs(t, err, users.ErrDuplicateUser)

	_, err = svc.Register(context.Background(), "alice2", "alice@example.com", "a long password 42", users.RoleUser, "")
	assert.ErrorIs(t, err, users.ErrDuplicateUser)
}

func TestAuthService_Login_IssuesVerifiableToken(t *testing.T) {
	svc, _ := newAuthService(t)

	registered, err := svc.Register(context.Background(), "bob", "bob@example.com", "a long password 42", users.RoleAnalyst, "org-7")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "bob", "a long password 42")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "bob@example.com", claims.Email)
	assert.Equal(t, users.RoleAnalyst, claims.Role)
	assert.Equal(t, 3, claims.QuantumClearanceLevel)
	assert.Equal(t, "org-7", claims.OrganizationID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "carol", "carol@example.com", "a long password 42", users.RoleUser, "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "carol", "wrong password 42")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "a long password 42")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestAuthService_VerifyToken_RejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestAuthService_VerifyToken_RejectsForeignSignature(t *testing.T) {
	svc, _ := newAuthService(t)

	other, err := NewAuthService(newFakeUserRepo(), "a completely different secret", time.Hour, testLogger())
	require.NoError(t, err)

	_, err = other.Register(context.Background(), "dave", "dave@example.com", "a long password 42", users.RoleUser, "")
	require.NoError(t, err)
	token, _, err := other.Login(context.Background(), "dave", "a long password 42")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestAuthService_VerifyToken_RejectsExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc, err := NewAuthService(repo, testSecret, -time.Hour, testLogger())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "erin", "erin@example.com", "a long password 42", users.RoleUser, "")
	require.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "erin", "a long password 42")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}
