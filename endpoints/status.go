package endpoints

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// NewStatusEndpoint responds with the configured string, or 204 when none is set.
func NewStatusEndpoint(response string) httprouter.Handle {
	responseBytes := []byte(response)
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		if len(responseBytes) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write(responseBytes)
	}
}
