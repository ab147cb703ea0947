package endpoints

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaleout-ssp/prebid-modules/openrtb_ext"
)

const testSchemaDirectory = "../static/bidder-params"

func TestBidderParamsEndpoint(t *testing.T) {
	validator, err := openrtb_ext.NewBidderParamsValidator(testSchemaDirectory)
	if err != nil {
		t.Fatalf("Failed to load the json-schemas: %v", err)
	}
	handler := NewBidderParamsEndpoint(testSchemaDirectory, validator)

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("GET", "/bidders/params", nil), nil)

	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var schemas map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &schemas))
	assert.Contains(t, schemas, "scaleout")
}

func TestStatusEndpoint(t *testing.T) {
	recorder := httptest.NewRecorder()
	NewStatusEndpoint("ok")(recorder, httptest.NewRequest("GET", "/status", nil), nil)
	assert.Equal(t, 200, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())

	recorder = httptest.NewRecorder()
	NewStatusEndpoint("")(recorder, httptest.NewRequest("GET", "/status", nil), nil)
	assert.Equal(t, 204, recorder.Code)
}
