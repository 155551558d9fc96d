package mux

import (
	"net/http"

	"deluxeblackjack-server/pkg/account"
)

type statsResponse struct {
	*account.Stats
	WinRate float64 `json:"winRate"`
}

func (m *Mux) getUserStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := account.GetStats(r.Context(), currentUser(r).ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{
			Stats:   stats,
			WinRate: stats.WinRate(),
		})
	}
}

func (m *Mux) deleteUserStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := account.ResetStats(r.Context(), currentUser(r).ID); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}
