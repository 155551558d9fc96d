package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetPassword(t *testing.T) {
	a := assert.New(t)
	user := createTestUser(t)
	user.Verified = true
	a.NoError(user.Save(cbg))

	resetToken, err := user.CreatePasswordResetRequest(cbg)
	a.NoError(err)
	a.Len(resetToken, 20)

	a.Equal(ErrInvalidResetToken, ResetPassword(cbg, "no-such-token", "new-password"))

	a.NoError(ResetPassword(cbg, resetToken, "new-password"))

	_, err = GetUserByEmailAndPassword(cbg, user.Email, "password")
	a.Equal(ErrInvalidEmailOrPassword, err)

	got, err := GetUserByEmailAndPassword(cbg, user.Email, "new-password")
	a.NoError(err)
	a.Equal(user.ID, got.ID)

	// tokens are single use
	a.Equal(ErrInvalidResetToken, ResetPassword(cbg, resetToken, "another-password"))
}

func TestResetPassword_NewRequestExpiresOld(t *testing.T) {
	a := assert.New(t)
	user := createTestUser(t)

	first, err := user.CreatePasswordResetRequest(cbg)
	a.NoError(err)

	second, err := user.CreatePasswordResetRequest(cbg)
	a.NoError(err)
	a.NotEqual(first, second)

	a.Equal(ErrInvalidResetToken, ResetPassword(cbg, first, "new-password"))
	a.NoError(ResetPassword(cbg, second, "new-password"))
}
