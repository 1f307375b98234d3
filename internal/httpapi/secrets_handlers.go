package httpapi

import (
	"encoding/json"
	"net/http"

	"apptrack-engine/internal/secrets"
)

type SecretsHandler struct{}

type tokenPayload struct {
	Token string `json:"token"`
}

// SetToken stores (or clears) the API token in the OS keychain.
func (SecretsHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	var p tokenPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	if p.Token == "" {
		if err := secrets.DeleteAPIToken(); err != nil {
			writeError(w, r, http.StatusInternalServerError, "keyring_failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "cleared": true})
		return
	}

	if err := secrets.SetAPIToken(p.Token); err != nil {
		writeError(w, r, http.StatusInternalServerError, "keyring_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
