package endpoints

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/scaleout-ssp/prebid-modules/openrtb_ext"
)

// NewBidderParamsEndpoint implements GET /bidders/params, serving all bidder
// param schemas as one JSON object keyed by bidder name.
//
// The file contents are slurped into memory at startup, since they are small
// and it minimizes request latency. A schema for an unknown bidder is a
// programming error and exits the process.
func NewBidderParamsEndpoint(schemaDirectory string, validator openrtb_ext.BidderParamValidator) httprouter.Handle {
	files, err := os.ReadDir(schemaDirectory)
	if err != nil {
		glog.Fatalf("Failed to read directory %s: %v", schemaDirectory, err)
	}

	data := make(map[string]json.RawMessage, len(files))
	for _, file := range files {
		bidder := strings.TrimSuffix(file.Name(), ".json")
		bidderName, isValid := openrtb_ext.GetBidderName(bidder)
		if !isValid {
			glog.Fatalf("Schema exists for an unknown bidder: %s", bidder)
		}
		data[bidder] = json.RawMessage(validator.Schema(bidderName))
	}

	response, err := json.Marshal(data)
	if err != nil {
		glog.Fatalf("Failed to marshal bidder param JSON-schema: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Add("Content-Type", "application/json")
		w.Write(response)
	}
}
