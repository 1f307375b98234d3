package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"apptrack-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	if v := h.CfgVal.Load(); v != nil {
		writeJSON(w, http.StatusOK, v.(config.Config))
		return
	}
	writeJSON(w, http.StatusOK, config.Default())
}

// Put validates, persists, and hot-swaps the running config.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	normalized, res := config.NormalizeAndValidate(cfg)
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		writeError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	h.CfgVal.Store(normalized)
	writeJSON(w, http.StatusOK, res)
}
