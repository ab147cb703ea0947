package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/scaleout-ssp/prebid-modules/idsync"
)

// NewIDEndpoint implements GET /id/snowflake: it runs the identity module once
// and returns the generated identifier together with the sync outcome.
func NewIDEndpoint(module *idsync.Module) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		result := module.GetID(r.Context())

		w.Header().Add("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
