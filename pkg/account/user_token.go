package account

import (
	"context"
	"database/sql"
	"time"

	"deluxeblackjack-server/pkg/db"
	"deluxeblackjack-server/pkg/token"

	"github.com/synacor/argon2id"
)

const tokenTypePasswordReset = "password_reset"

// passwordResetTTL is how long a reset token stays usable
const passwordResetTTL = time.Hour

// ErrInvalidResetToken is returned when the reset token is unknown, spent,
// or too old
var ErrInvalidResetToken = UserError("invalid or expired reset token")

// CreatePasswordResetRequest expires any outstanding reset tokens for the
// user and issues a fresh one. There is no mailer; an admin hands the token
// to the user out of band.
func (u *User) CreatePasswordResetRequest(ctx context.Context) (string, error) {
	if err := u.expireUserTokens(ctx, tokenTypePasswordReset); err != nil {
		return "", err
	}

	return u.createUserToken(ctx, tokenTypePasswordReset)
}

// createUserToken creates a new single-use token for the user
func (u *User) createUserToken(ctx context.Context, tokenType string) (string, error) {
	const query = `
INSERT INTO user_tokens (token, user_id, type)
VALUES ($1, $2, $3)`

	userToken, err := token.Generate(20)
	if err != nil {
		return "", err
	}

	if _, err := db.Instance().ExecContext(ctx, query, userToken, u.ID, tokenType); err != nil {
		return "", err
	}

	return userToken, nil
}

// expireUserTokens deactivates every outstanding token of the type
func (u *User) expireUserTokens(ctx context.Context, tokenType string) error {
	const query = `
UPDATE user_tokens
SET active = 'f'
WHERE user_id = $1 AND type = $2`

	_, err := db.Instance().ExecContext(ctx, query, u.ID, tokenType)
	return err
}

// ResetPassword consumes the reset token and stores the new password
func ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	newHash, err := argon2id.DefaultHashPassword(newPassword)
	if err != nil {
		return err
	}

	const consume = `
UPDATE user_tokens
SET active = 'f'
WHERE token = $1
  AND type = $2
  AND active
  AND created >= $3
RETURNING user_id`

	cutoff := time.Now().In(time.UTC).Add(-1 * passwordResetTTL)

	var userID int64
	if err := db.Instance().QueryRowContext(ctx, consume, resetToken, tokenTypePasswordReset, cutoff).Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidResetToken
		}

		return err
	}

	const update = `
UPDATE users
SET password_hash = $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2`

	_, err = db.Instance().ExecContext(ctx, update, newHash, userID)
	return err
}
