package httpapi

import (
	"encoding/json"
	"net/http"

	"jobradar-engine/internal/secrets"
)

type SecretsHandler struct{}

type setKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) set(account string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setKeyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := secrets.Set(account, req.Key); err != nil {
			http.Error(w, "failed to store key: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h SecretsHandler) SetSearchKey(w http.ResponseWriter, r *http.Request) {
	h.set(secrets.SearchAccount)(w, r)
}

func (h SecretsHandler) SetAirtableKey(w http.ResponseWriter, r *http.Request) {
	h.set(secrets.AirtableAccount)(w, r)
}
