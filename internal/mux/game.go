package mux

import (
	"net/http"

	"deluxeblackjack-server/pkg/playable"
)

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.manager.Session(r.Context(), currentUser(r))
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		state, err := sess.State()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postGameAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playable.PayloadIn
		if !decodeRequest(w, r, &payload) {
			return
		}

		sess, err := m.manager.Session(r.Context(), currentUser(r))
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if _, err := sess.Dispatch(r.Context(), &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		// the action may have run the dealer steps, return the final state
		state, err := sess.State()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
