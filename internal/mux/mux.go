package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"deluxeblackjack-server/internal/jwt"
	"deluxeblackjack-server/pkg/account"
	"deluxeblackjack-server/pkg/session"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const ctxUserKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config    muxConfig
	version   string
	recaptcha recaptcha
	manager   *session.Manager

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type muxConfig struct {
	// userCreateDelay is the minimum duration between two signups from a single remote address
	userCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string, manager *session.Manager) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		manager: manager,
		config: muxConfig{
			userCreateDelay: time.Minute,
		},
		recaptcha: newRecaptcha(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/user").Handler(this.postUser())
		r.Methods(http.MethodPost).Path("/user/auth").Handler(this.postUserAuth())
		r.Methods(http.MethodPost).Path("/user/password-reset").Handler(this.postUserPasswordReset())
		r.Methods(http.MethodGet).Path("/user/auth/{jwt:.*}").Handler(this.getUserAuthJWT())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/user/settings").Handler(this.getUserSettings())
		r.Methods(http.MethodPost).Path("/user/settings").Handler(this.postUserSettings())

		r.Methods(http.MethodGet).Path("/user/stats").Handler(this.getUserStats())
		r.Methods(http.MethodDelete).Path("/user/stats").Handler(this.deleteUserStats())

		r.Methods(http.MethodGet).Path("/user/history").Handler(this.getUserHistory())
		r.Methods(http.MethodDelete).Path("/user/history").Handler(this.deleteUserHistory())

		r.Methods(http.MethodGet).Path("/user/purchases").Handler(this.getUserPurchases())
		r.Methods(http.MethodPost).Path("/user/funds").Handler(this.postUserFunds())

		r.Methods(http.MethodPost).Path("/user/{id:[0-9]+}").Handler(this.postUserID())

		r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
		r.Methods(http.MethodPost).Path("/game/action").Handler(this.postGameAction())
		r.Methods(http.MethodGet).Path("/game/ws").Handler(this.getGameWS())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodGet).Path("/user").Handler(this.getUser())
		r.Methods(http.MethodPost).Path("/admin/user/{id:[0-9]+}").Handler(this.postAdminUserID())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		user, err := account.GetUserByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserKey, user)
		w.Header().Set("DeluxeBlackjack-UserID", strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(ctxUserKey).(*account.User)
		if !user.IsSiteAdmin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *account.User {
	return r.Context().Value(ctxUserKey).(*account.User)
}
