package account

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"deluxeblackjack-server/pkg/db"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"
)

const userColumns = `
users.id,
users.email,
users.display_name,
users.is_site_admin,
users.verified,
users.balance,
users.password_hash,
users.created,
users.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrInvalidEmailOrPassword is an error for an invalid email or password
var ErrInvalidEmailOrPassword = errors.New("invalid email address and/or password")

// ErrDuplicateKey happens if a user tries to sign up with a taken email
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrAccountNotVerified is an error if the user tries to log in without being verified
var ErrAccountNotVerified = UserError("account not verified")

// ErrInsufficientBalance happens when a balance adjustment would go negative
var ErrInsufficientBalance = UserError("insufficient balance")

// User is a record in the `users` table
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"-"`
	DisplayName  string `json:"displayName"`
	IsSiteAdmin  bool   `json:"isSiteAdmin"`
	Verified     bool   `json:"verified"`
	Balance      int    `json:"balance"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getUserByRow(row db.Scanner) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.IsSiteAdmin, &user.Verified, &user.Balance, &user.passwordHash, &user.Created, &user.Updated); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns the user based on the ID
func GetUserByID(ctx context.Context, id int64) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getUserByRow(row)
}

// GetUserByEmail will return a user by the email address
func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1)`

	row := db.Instance().QueryRowContext(ctx, query, email)
	return getUserByRow(row)
}

// GetUserByEmailAndPassword will return a user if the email and password are valid
func GetUserByEmailAndPassword(ctx context.Context, email, password string) (*User, error) {
	user, err := GetUserByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidEmailOrPassword
		}

		return nil, err
	}

	if err := argon2id.Compare(user.passwordHash, password); err != nil {
		return nil, ErrInvalidEmailOrPassword
	}

	if !user.Verified {
		return nil, ErrAccountNotVerified
	}

	return user, nil
}

// LastUserCreatedAt returns the last time a user was created by the remote address
// If a user hasn't been created yet, this will return a nil error and a time.Time{} object (i.e., zero)
func LastUserCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM users
WHERE remote_addr = $1`

	var created sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, remoteAddr).Scan(&created); err != nil {
		return time.Time{}, err
	}

	return created.Time, nil
}

// CreateUser creates a new user with the starting balance
func CreateUser(ctx context.Context, email, displayName, password, remoteAddr string, startingBalance int) (*User, error) {
	hashPassword, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO users (email, display_name, password_hash, remote_addr, balance)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns

	row := db.Instance().QueryRowContext(ctx, query, email, displayName, hashPassword, remoteAddr, startingBalance)
	user, err := getUserByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return user, nil
}

// Save will persist profile changes to the database
func (u *User) Save(ctx context.Context) error {
	const query = `
UPDATE users
SET email = $1,
    display_name = $2,
    is_site_admin = $3,
    verified = $4,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $5`

	_, err := db.Instance().ExecContext(ctx, query, u.Email, u.DisplayName, u.IsSiteAdmin, u.Verified, u.ID)
	return err
}

// SetPassword will set a new password
func (u *User) SetPassword(password string) error {
	newHash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return err
	}

	const query = `
UPDATE users
SET password_hash = $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2`

	_, err = db.Instance().Exec(query, newHash, u.ID)
	return err
}

// SetIsSiteAdmin sets whether the user is a site admin
func (u *User) SetIsSiteAdmin(ctx context.Context, isSiteAdmin bool) error {
	if u.IsSiteAdmin == isSiteAdmin {
		return nil
	}

	const query = `
UPDATE users
SET is_site_admin = $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2
RETURNING updated`

	var updated sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, isSiteAdmin, u.ID).Scan(&updated); err != nil {
		return err
	}

	u.IsSiteAdmin = isSiteAdmin
	u.Updated = updated.Time
	return nil
}

// SetBalance stores the post-round balance
func (u *User) SetBalance(ctx context.Context, balance int) error {
	const query = `
UPDATE users
SET balance = $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, balance, u.ID); err != nil {
		return err
	}

	u.Balance = balance
	return nil
}

func getUsers(rows *sql.Rows, err error) ([]*User, error) {
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0)
	for rows.Next() {
		user, err := getUserByRow(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, nil
}

// GetUsersWithSearch will return a list of users matching the specified search string
func GetUsersWithSearch(ctx context.Context, search string, offset int64, limit int) ([]*User, error) {
	if search == "" {
		return GetUsers(ctx, offset, limit)
	}

	if searchInt, _ := strconv.ParseInt(search, 10, 64); searchInt > 0 {
		const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

		return getUsers(db.Instance().QueryContext(ctx, query, searchInt))
	}

	const query = `
SELECT ` + userColumns + `
FROM users
WHERE display_name LIKE $1 || '%' OR email LIKE $1 || '%'
ORDER BY id ASC
OFFSET $2
LIMIT $3`

	return getUsers(db.Instance().QueryContext(ctx, query, search, offset, limit))
}

// GetUsers returns a list of users
func GetUsers(ctx context.Context, offset int64, limit int) ([]*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY id ASC
OFFSET $1
LIMIT $2`

	return getUsers(db.Instance().QueryContext(ctx, query, offset, limit))
}
