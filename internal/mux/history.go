package mux

import (
	"net/http"

	"deluxeblackjack-server/pkg/account"
)

func (m *Mux) getUserHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		matches, err := account.GetMatchHistory(r.Context(), currentUser(r).ID, offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, matches)
	}
}

func (m *Mux) deleteUserHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := account.ClearMatchHistory(r.Context(), currentUser(r).ID); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) getUserPurchases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		purchases, err := account.GetPurchaseHistory(r.Context(), currentUser(r).ID, offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, purchases)
	}
}

type postUserFundsPayload struct {
	Amount int `json:"amount"`
}

func (m *Mux) postUserFunds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postUserFundsPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		purchase, err := currentUser(r).AddFunds(r.Context(), payload.Amount)
		if err != nil {
			if _, ok := err.(account.UserError); ok {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, purchase)
	}
}
