package mux

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"deluxeblackjack-server/internal/config"
	"deluxeblackjack-server/internal/jwt"
	"deluxeblackjack-server/internal/util"
	"deluxeblackjack-server/pkg/account"

	"github.com/badoux/checkmail"
	"github.com/gorilla/mux"
)

const defaultStartingBalance = 1000

type userPayload struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Token       string `json:"token"`
}

// userWithEmail should only be returned in an admin context, or for the requesting user
type userWithEmail struct {
	*account.User
	Email string `json:"email"`
}

var validDisplayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)
var statusOK = map[string]string{
	"status": "OK",
}

func startingBalance() int {
	if balance := config.Instance().Table.StartingBalance; balance > 0 {
		return balance
	}

	return defaultStartingBalance
}

func (m *Mux) postUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var up userPayload
		if !decodeRequest(w, r, &up) {
			return
		}

		if err := m.recaptcha.Verify(up.Token); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if !validDisplayNameRx.MatchString(up.DisplayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		if err := checkmail.ValidateFormat(up.Email); err != nil {
			writeJSONError(w, http.StatusBadRequest, errors.New("missing or invalid email address"))
			return
		}

		if len(up.Password) < 6 {
			writeJSONError(w, http.StatusBadRequest, errors.New("password must be 6 or more characters"))
			return
		}

		addr := remoteAddr(r)
		at, err := account.LastUserCreatedAt(r.Context(), addr)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if time.Since(at) < m.config.userCreateDelay {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another account"))
			return
		}

		var displayName string
		if up.DisplayName != "" {
			displayName = up.DisplayName
		} else {
			displayName = util.GetRandomName()
		}

		user, err := account.CreateUser(r.Context(), up.Email, displayName, up.Password, addr, startingBalance())
		if err != nil {
			if err == account.ErrDuplicateKey {
				writeJSONError(w, http.StatusBadRequest, errors.New("email address is already taken"))
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, &userWithEmail{
			User:  user,
			Email: user.Email,
		})
	}
}

type postUserIDPayload struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (m *Mux) postUserID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		// prevent a user from updating another user
		user := currentUser(r)
		if user.ID != userID {
			writeJSONError(w, http.StatusForbidden, err)
			return
		}

		var up postUserIDPayload
		if !decodeRequest(w, r, &up) {
			return
		}

		update := false

		if displayName := up.DisplayName; displayName != "" {
			if !validDisplayNameRx.MatchString(displayName) {
				writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces"))
				return
			}

			user.DisplayName = displayName
			update = true
		}

		if email := up.Email; email != "" {
			if err := checkmail.ValidateFormat(email); err != nil {
				writeJSONError(w, http.StatusBadRequest, errors.New("invalid email address"))
				return
			}

			user.Email = email
			update = true
		}

		if update {
			if err := user.Save(r.Context()); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

type postUserAuthResponse struct {
	JWT  string        `json:"jwt"`
	User userWithEmail `json:"user"`
}

func (m *Mux) postUserAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var up userPayload
		if !decodeRequest(w, r, &up) {
			return
		}

		user, err := account.GetUserByEmailAndPassword(r.Context(), up.Email, up.Password)
		if err != nil {
			if err == account.ErrInvalidEmailOrPassword || err == account.ErrAccountNotVerified {
				writeJSONError(w, http.StatusUnauthorized, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		signedToken, err := jwt.Sign(user.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, postUserAuthResponse{
			JWT: signedToken,
			User: userWithEmail{
				User:  user,
				Email: user.Email,
			},
		})
	}
}

type postUserPasswordResetPayload struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// postUserPasswordReset consumes a single-use reset token issued through
// the admin endpoint
func (m *Mux) postUserPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postUserPasswordResetPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if len(payload.Password) < 6 {
			writeJSONError(w, http.StatusBadRequest, errors.New("password must be 6 or more characters"))
			return
		}

		if err := account.ResetPassword(r.Context(), payload.Token, payload.Password); err != nil {
			if _, ok := err.(account.UserError); ok {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) getUserAuthJWT() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signedToken := mux.Vars(r)["jwt"]
		userID, err := jwt.ValidPlayerID(signedToken)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, err)
			return
		}

		user, err := account.GetUserByID(r.Context(), userID)
		if err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusNotFound, errors.New("user does not exist"))
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		writeJSON(w, http.StatusOK, userWithEmail{
			User:  user,
			Email: user.Email,
		})
	}
}

func (m *Mux) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		users, err := account.GetUsersWithSearch(r.Context(), r.FormValue("search"), offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		adminUsers := make([]*userWithEmail, len(users))
		for i, u := range users {
			adminUsers[i] = &userWithEmail{
				User:  u,
				Email: u.Email,
			}
		}

		writeJSON(w, http.StatusOK, adminUsers)
	}
}

type adminPostUserIDRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func (m *Mux) postAdminUserID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		user, err := account.GetUserByID(r.Context(), userID)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		var payload adminPostUserIDRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		switch payload.Key {
		case "password":
			value, ok := payload.Value.(string)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, errors.New("password must be a string"))
				return
			}

			if err := user.SetPassword(value); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		case "verified":
			value, ok := payload.Value.(bool)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, errors.New("verified must be a boolean"))
				return
			}

			user.Verified = value
			if err := user.Save(r.Context()); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		case "isSiteAdmin":
			value, ok := payload.Value.(bool)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, errors.New("isSiteAdmin must be a boolean"))
				return
			}

			if err := user.SetIsSiteAdmin(r.Context(), value); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		case "passwordReset":
			resetToken, err := user.CreatePasswordResetRequest(r.Context())
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			writeJSON(w, http.StatusOK, map[string]string{"token": resetToken})
			return
		case "balance":
			value, ok := payload.Value.(float64)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, errors.New("balance must be a number"))
				return
			}

			if err := user.SetBalance(r.Context(), int(value)); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		default:
			writeJSONError(w, http.StatusBadRequest, errors.New("bad payload"))
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}
