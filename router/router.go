package router

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/scaleout-ssp/prebid-modules/config"
	"github.com/scaleout-ssp/prebid-modules/endpoints"
	"github.com/scaleout-ssp/prebid-modules/idsync"
	"github.com/scaleout-ssp/prebid-modules/openrtb_ext"
)

const schemaDirectory = "static/bidder-params"

type Router struct {
	*httprouter.Router
}

// New builds the HTTP mux for the dev harness: module health, the snowflake
// identity endpoint and the bidder param schemas.
func New(cfg *config.Configuration) (*Router, error) {
	paramsValidator, err := openrtb_ext.NewBidderParamsValidator(schemaDirectory)
	if err != nil {
		return nil, err
	}

	idModule := idsync.NewModule(cfg.IDSync, &http.Client{Timeout: 5 * time.Second}, nil)

	r := &Router{Router: httprouter.New()}
	r.GET("/status", endpoints.NewStatusEndpoint("ok"))
	r.GET("/id/snowflake", endpoints.NewIDEndpoint(idModule))
	r.GET("/bidders/params", endpoints.NewBidderParamsEndpoint(schemaDirectory, paramsValidator))
	return r, nil
}
