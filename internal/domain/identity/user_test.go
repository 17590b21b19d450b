package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("jdoe", "jdoe@example.com", "secret123", uuid.New())
	require.NoError(t, err)
	return u
}

func TestNewUser_Valid(t *testing.T) {
	u := newTestUser(t)
	assert.Equal(t, "jdoe", u.Username)
	assert.Equal(t, UserStatusActive, u.Status)
	assert.True(t, u.VerifyPassword("secret123"))
	assert.False(t, u.VerifyPassword("wrong"))
}

func TestNewUser_NormalizesCase(t *testing.T) {
	u, err := NewUser("JDoe", "JDoe@Example.COM", "secret123", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "jdoe", u.Username)
	assert.Equal(t, "jdoe@example.com", u.Email)
}

func TestNewUser_Invalid(t *testing.T) {
	roleID := uuid.New()
	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@b.com", "secret123"},
		{"short username", "ab", "a@b.com", "secret123"},
		{"bad username chars", "j doe!", "a@b.com", "secret123"},
		{"empty email", "jdoe", "", "secret123"},
		{"bad email", "jdoe", "not-an-email", "secret123"},
		{"short password", "jdoe", "a@b.com", "ab1"},
		{"no digit in password", "jdoe", "a@b.com", "passwordonly"},
		{"no letter in password", "jdoe", "a@b.com", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.username, tc.email, tc.password, roleID)
			assert.Error(t, err)
		})
	}

	_, err := NewUser("jdoe", "a@b.com", "secret123", uuid.Nil)
	assert.Error(t, err, "nil role id")
}

func TestUser_LockoutAfterFailedAttempts(t *testing.T) {
	u := newTestUser(t)

	locked := false
	for i := 0; i < 4; i++ {
		locked = u.RecordLoginFailure(5, 15*time.Minute)
		assert.False(t, locked)
	}
	locked = u.RecordLoginFailure(5, 15*time.Minute)
	assert.True(t, locked)
	assert.True(t, u.IsLocked())
	assert.False(t, u.CanLogin())
}

func TestUser_LockExpires(t *testing.T) {
	u := newTestUser(t)
	u.Lock(15 * time.Minute)
	assert.True(t, u.IsLocked())

	expired := time.Now().Add(-time.Minute)
	u.LockedUntil = &expired
	assert.False(t, u.IsLocked())
	assert.True(t, u.CanLogin())
}

func TestUser_LoginSuccessResetsFailures(t *testing.T) {
	u := newTestUser(t)
	u.RecordLoginFailure(5, 15*time.Minute)
	u.RecordLoginFailure(5, 15*time.Minute)

	u.RecordLoginSuccess("10.0.0.1")
	assert.Equal(t, 0, u.FailedAttempts)
	assert.Equal(t, "10.0.0.1", u.LastLoginIP)
	require.NotNil(t, u.LastLoginAt)
}

func TestUser_ChangePassword(t *testing.T) {
	u := newTestUser(t)

	err := u.ChangePassword("wrong", "newsecret1")
	assert.Error(t, err)

	require.NoError(t, u.ChangePassword("secret123", "newsecret1"))
	assert.True(t, u.VerifyPassword("newsecret1"))
	assert.False(t, u.VerifyPassword("secret123"))
}

func TestUser_ActivateDeactivate(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.Deactivate())
	assert.True(t, u.IsDeactivated())
	assert.False(t, u.CanLogin())
	assert.Error(t, u.Deactivate())

	require.NoError(t, u.Activate())
	assert.Equal(t, UserStatusActive, u.Status)
	assert.Error(t, u.Activate())
}

func TestUser_ActivateClearsLock(t *testing.T) {
	u := newTestUser(t)
	u.RecordLoginFailure(1, 15*time.Minute)
	require.True(t, u.IsLocked())

	require.NoError(t, u.Activate())
	assert.False(t, u.IsLocked())
	assert.Equal(t, 0, u.FailedAttempts)
	assert.Nil(t, u.LockedUntil)
}

func TestUser_GetFullNameOrUsername(t *testing.T) {
	u := newTestUser(t)
	assert.Equal(t, "jdoe", u.GetFullNameOrUsername())
	require.NoError(t, u.SetFullName("Jane Doe"))
	assert.Equal(t, "Jane Doe", u.GetFullNameOrUsername())
}
