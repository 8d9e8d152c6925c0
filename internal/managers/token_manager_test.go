package managers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(t *testing.T) TokenMgr {
	t.Helper()
	tm, err := NewTokenManager("test-signing-secret")
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRejectsEmptySecret(t *testing.T) {
	_, err := NewTokenManager("")
	assert.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	for _, purpose := range []TokenPurpose{PurposeSession, PurposeVerification, PurposeReset} {
		token, err := tm.Issue("user-123", purpose, time.Hour)
		require.NoError(t, err)

		subject, err := tm.Verify(token, purpose)
		require.NoError(t, err)
		assert.Equal(t, "user-123", subject)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Issue("user-123", PurposeSession, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token, PurposeSession)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongPurpose(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Issue("user-123", PurposeVerification, time.Hour)
	require.NoError(t, err)

	// An unexpired, well-formed verification token must be rejected by both
	// the session and the reset checks.
	_, err = tm.Verify(token, PurposeSession)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	_, err = tm.Verify(token, PurposeReset)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := newTestTokenManager(t)

	_, err := tm.Verify("not.a.token", PurposeSession)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = tm.Verify("", PurposeSession)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := NewTokenManager("a-different-secret")
	require.NoError(t, err)

	token, err := other.Issue("user-123", PurposeSession, time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify(token, PurposeSession)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Issue("user-123", PurposeSession, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tm.Verify(tampered, PurposeSession)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
