package mux

import (
	"net/http"

	"deluxeblackjack-server/pkg/account"
)

func (m *Mux) getUserSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := account.GetSettings(r.Context(), currentUser(r).ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

// postUserSettings saves the user's house rules. They take effect the next
// time a session starts a fresh game.
func (m *Mux) postUserSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings account.Settings
		if !decodeRequest(w, r, &settings) {
			return
		}

		settings.UserID = currentUser(r).ID
		if err := settings.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if err := settings.Save(r.Context()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}
