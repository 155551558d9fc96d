package mux

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"deluxeblackjack-server/internal/jwt"
	"deluxeblackjack-server/internal/util"
	"deluxeblackjack-server/pkg/account"

	"github.com/stretchr/testify/assert"
)

func Test_postUser(t *testing.T) {
	setupJWT()
	m := newTestMux("")
	m.config.userCreateDelay = time.Second * -1

	ts := httptest.NewServer(m)
	defer ts.Close()

	var obj errorResponse
	assertPost(t, ts, "/user", "{}", &obj, 400)
	assert.Equal(t, "missing or invalid email address", obj.Message)

	obj = errorResponse{}
	assertPost(t, ts, "/user", userPayload{
		DisplayName: "&",
	}, &obj, 400)
	assert.Equal(t, "display name must only contain letters, numbers, and spaces, and be 40 characters or less", obj.Message)

	email := util.RandomEmail()
	obj = errorResponse{}
	assertPost(t, ts, "/user", userPayload{
		Email:    email,
		Password: "",
	}, &obj, 400)
	assert.Equal(t, "password must be 6 or more characters", obj.Message)

	var uObj *userWithEmail
	assertPost(t, ts, "/user", userPayload{
		Email:    email,
		Password: "123456",
	}, &uObj, 201)
	assert.Greater(t, uObj.ID, int64(0))
	assert.Equal(t, email, uObj.Email)
	assert.NotEmpty(t, uObj.DisplayName)
	assert.Equal(t, defaultStartingBalance, uObj.Balance)

	obj = errorResponse{}
	assertPost(t, ts, "/user", &userPayload{
		Email:    email,
		Password: "123456",
	}, &obj, 400)
	assert.Equal(t, "email address is already taken", obj.Message)

	// test display name
	email = util.RandomEmail()
	assertPost(t, ts, "/user", userPayload{
		Email:       email,
		Password:    "123456",
		DisplayName: "Tommy",
	}, &uObj, 201)
	assert.Greater(t, uObj.ID, int64(0))
	assert.Equal(t, email, uObj.Email)
	assert.Equal(t, "Tommy", uObj.DisplayName)

	m.config.userCreateDelay = time.Hour
	obj = errorResponse{}
	assertPost(t, ts, "/user", userPayload{
		Email:    util.RandomEmail(),
		Password: "123456",
	}, &obj, 400)
	assert.Equal(t, "please wait before creating another account", obj.Message)
}

func Test_postUserAuth(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	u, _ := user()

	var resp postUserAuthResponse
	assertPost(t, ts, "/user/auth", userPayload{
		Email:    u.Email,
		Password: "password",
	}, &resp, 200)
	id, err := jwt.ValidPlayerID(resp.JWT)
	assert.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, u.Email, resp.User.Email)

	var userObj *userWithEmail
	assertGet(t, ts, fmt.Sprintf("/user/auth/%s", resp.JWT), &userObj, 200)
	assert.Equal(t, u.Email, userObj.Email)
}

func Test_postUserAuth_BadCreds(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	u, _ := user()

	var errObj errorResponse
	assertPost(t, ts, "/user/auth", userPayload{
		Email:    u.Email,
		Password: "bad-password",
	}, &errObj, 401)
	assert.Equal(t, "invalid email address and/or password", errObj.Message)
}

func Test_postUserAuth_Unverified(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	remoteAddr := fmt.Sprintf("127.0.0.1:%d", time.Now().UnixNano())
	u, err := account.CreateUser(cbg, util.RandomEmail(), "Unverified", "password", remoteAddr, 1000)
	assert.NoError(t, err)

	var errObj errorResponse
	assertPost(t, ts, "/user/auth", userPayload{
		Email:    u.Email,
		Password: "password",
	}, &errObj, 401)
	assert.Equal(t, "account not verified", errObj.Message)
}

func Test_getUserAuthJWT_BadRequests(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/user/auth/bad", &errObj, 401)
	assert.NotEmpty(t, errObj.Message)

	// this should only happen if the user is deleted from the database
	signedToken, _ := jwt.Sign(-1)
	errObj = errorResponse{}
	assertGet(t, ts, fmt.Sprintf("/user/auth/%s", signedToken), &errObj, 404)
	assert.Equal(t, "user does not exist", errObj.Message)
}

func Test_postUserID(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	u, token := user()
	u2, _ := user()

	var obj map[string]string
	assertPost(t, ts, fmt.Sprintf("/user/%d", u.ID), postUserIDPayload{
		DisplayName: "New Name",
	}, &obj, 200, token)
	assert.Equal(t, "OK", obj["status"])

	got, err := account.GetUserByID(cbg, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", got.DisplayName)

	// cannot update another user
	var errObj errorResponse
	assertPost(t, ts, fmt.Sprintf("/user/%d", u2.ID), postUserIDPayload{
		DisplayName: "Nope",
	}, &errObj, 403, token)

	errObj = errorResponse{}
	assertPost(t, ts, fmt.Sprintf("/user/%d", u.ID), postUserIDPayload{
		Email: "not-an-email",
	}, &errObj, 400, token)
	assert.Equal(t, "invalid email address", errObj.Message)
}

func Test_adminUserEndpoints(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	admin, adminToken := user()
	assert.NoError(t, admin.SetIsSiteAdmin(cbg, true))

	target, _ := user()

	var users []*userWithEmail
	assertGet(t, ts, fmt.Sprintf("/user?search=%d", target.ID), &users, 200, adminToken)
	if assert.Len(t, users, 1) {
		assert.Equal(t, target.ID, users[0].ID)
		assert.Equal(t, target.Email, users[0].Email)
	}

	var obj map[string]string
	assertPost(t, ts, fmt.Sprintf("/admin/user/%d", target.ID), adminPostUserIDRequest{
		Key:   "balance",
		Value: 2500,
	}, &obj, 200, adminToken)
	assert.Equal(t, "OK", obj["status"])

	got, err := account.GetUserByID(cbg, target.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2500, got.Balance)

	assertPost(t, ts, fmt.Sprintf("/admin/user/%d", target.ID), adminPostUserIDRequest{
		Key:   "verified",
		Value: false,
	}, &obj, 200, adminToken)

	got, _ = account.GetUserByID(cbg, target.ID)
	assert.False(t, got.Verified)

	var errObj errorResponse
	assertPost(t, ts, fmt.Sprintf("/admin/user/%d", target.ID), adminPostUserIDRequest{
		Key: "unknown",
	}, &errObj, 400, adminToken)
	assert.Equal(t, "bad payload", errObj.Message)

	assertPost(t, ts, "/admin/user/0", adminPostUserIDRequest{
		Key:   "verified",
		Value: true,
	}, &errObj, 404, adminToken)
}

// an admin issues a single-use reset token and hands it to the user out
// of band; the user trades it for a new password
func Test_passwordReset(t *testing.T) {
	setupJWT()
	ts := httptest.NewServer(newTestMux(""))
	defer ts.Close()

	admin, adminToken := user()
	assert.NoError(t, admin.SetIsSiteAdmin(cbg, true))

	target, _ := user()

	var tokenObj map[string]string
	assertPost(t, ts, fmt.Sprintf("/admin/user/%d", target.ID), adminPostUserIDRequest{
		Key: "passwordReset",
	}, &tokenObj, 200, adminToken)
	resetToken := tokenObj["token"]
	assert.Len(t, resetToken, 20)

	var errObj errorResponse
	assertPost(t, ts, "/user/password-reset", postUserPasswordResetPayload{
		Token:    resetToken,
		Password: "short",
	}, &errObj, 400)
	assert.Equal(t, "password must be 6 or more characters", errObj.Message)

	var obj map[string]string
	assertPost(t, ts, "/user/password-reset", postUserPasswordResetPayload{
		Token:    resetToken,
		Password: "brand-new-password",
	}, &obj, 200)
	assert.Equal(t, "OK", obj["status"])

	var resp postUserAuthResponse
	assertPost(t, ts, "/user/auth", userPayload{
		Email:    target.Email,
		Password: "brand-new-password",
	}, &resp, 200)
	assert.Equal(t, target.ID, resp.User.ID)

	// tokens are single use
	errObj = errorResponse{}
	assertPost(t, ts, "/user/password-reset", postUserPasswordResetPayload{
		Token:    resetToken,
		Password: "yet-another-password",
	}, &errObj, 400)
	assert.Equal(t, "invalid or expired reset token", errObj.Message)
}
