package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/subscribe"
	"github.com/zainmh-10/CreateAILab/internal/utils"
)

const maxSubscribeBytes = 16 << 10

type successResponse struct {
	Success bool `json:"success"`
}

// Subscribe serves POST /api/subscribe.
func Subscribe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribe.Request
		body := http.MaxBytesReader(w, r.Body, maxSubscribeBytes)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid email payload.")
			return
		}

		client := subscribe.Client{IP: utils.ForwardedIP(r), UserAgent: r.UserAgent()}
		_, err := d.Subscribe.Subscribe(r.Context(), req, client)

		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, successResponse{Success: true})
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, "Invalid email payload.")
		case errors.Is(err, domain.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded.")
		case errors.Is(err, domain.ErrDispatchFailed):
			writeError(w, http.StatusBadGateway, "Email send failed: "+err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Subscription failed.")
		}
	}
}
