package scaleout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/scaleout-ssp/prebid-modules/adapters"
	"github.com/scaleout-ssp/prebid-modules/config"
	"github.com/scaleout-ssp/prebid-modules/errortypes"
	"github.com/scaleout-ssp/prebid-modules/openrtb_ext"
)

const (
	defaultDebugEndpoint = "https://api-test.scaleout.jp/adsv/v1"

	sdkName        = "prebidserver"
	adapterVersion = "1.0.0"

	defaultTTLSeconds = 10
)

type adapter struct {
	endpoint      string
	debugEndpoint string
	currency      string
}

type extraInfo struct {
	AdServerCurrency string `json:"ad_server_currency"`
}

// bidderRequest is the ad server payload. The single impression is re-wrapped
// together with the shared request fields under "bid" so that the originating
// imp id can be read back out of the stored request body at parse time.
type bidderRequest struct {
	SDKName    string              `json:"sdkname"`
	AdapterVer string              `json:"adapterver"`
	ID         string              `json:"id"`
	Currency   string              `json:"currency"`
	Bid        openrtb2.BidRequest `json:"bid"`
}

type adServerResponse struct {
	Results []bidResult `json:"results"`
}

type bidResult struct {
	CPM        float64  `json:"cpm"`
	W          int64    `json:"w"`
	H          int64    `json:"h"`
	Ad         string   `json:"ad"`
	VastXML    string   `json:"vastxml"`
	Beacon     string   `json:"beacon"`
	BeaconURL  string   `json:"beaconurl"`
	TTL        int64    `json:"ttl"`
	CreativeID string   `json:"creativeid"`
	DealID     string   `json:"dealid"`
	ADomain    []string `json:"adomain"`

	NativeAd       *nativeAd       `json:"native_ad"`
	LocationParams *locationParams `json:"location_params"`
}

type locationParams struct {
	Option struct {
		AdType string `json:"ad_type"`
	} `json:"option"`
}

// Builder builds a new instance of the ScaleOut adapter for the given bidder with the given config.
func Builder(bidderName openrtb_ext.BidderName, cfg config.Adapter, server config.Server) (adapters.Bidder, error) {
	return &adapter{
		endpoint:      cfg.Endpoint,
		debugEndpoint: defaultDebugEndpoint,
		currency:      resolveCurrency(cfg.ExtraAdapterInfo),
	}, nil
}

// resolveCurrency applies the ad server currency rule: an explicit USD override
// yields USD, everything else (unset, garbage, other currencies) yields JPY.
// JPY is the ad server's market default, not a generic fallback.
func resolveCurrency(extraAdapterInfo string) string {
	if extraAdapterInfo != "" {
		var info extraInfo
		if err := json.Unmarshal([]byte(extraAdapterInfo), &info); err == nil && strings.EqualFold(info.AdServerCurrency, "USD") {
			return "USD"
		}
	}
	return "JPY"
}

func (a *adapter) MakeRequests(request *openrtb2.BidRequest, reqInfo *adapters.ExtraRequestInfo) ([]*adapters.RequestData, []error) {
	headers := http.Header{}
	headers.Add("Content-Type", "application/json;charset=utf-8")
	headers.Add("Accept", "application/json")

	// The ad server answers one ad per call, so exactly one request is made per
	// impression. The response parser relies on this to recover the imp id.
	requests := make([]*adapters.RequestData, 0, len(request.Imp))
	var errs []error
	for i := range request.Imp {
		imp := request.Imp[i]

		soExt, err := unmarshalExtImpScaleOut(&imp)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		envelope := *request
		envelope.Imp = []openrtb2.Imp{imp}

		body, err := json.Marshal(bidderRequest{
			SDKName:    sdkName,
			AdapterVer: adapterVersion,
			ID:         soExt.ID,
			Currency:   a.currency,
			Bid:        envelope,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}

		requests = append(requests, &adapters.RequestData{
			Method:  http.MethodPost,
			Uri:     a.endpointFor(soExt),
			Body:    body,
			Headers: headers,
			ImpIDs:  []string{imp.ID},
		})
	}
	return requests, errs
}

func (a *adapter) endpointFor(soExt *openrtb_ext.ExtImpScaleOut) string {
	if soExt.Debug {
		if soExt.DebugURL != "" {
			return soExt.DebugURL
		}
		return a.debugEndpoint
	}
	return a.endpoint
}

func unmarshalExtImpScaleOut(imp *openrtb2.Imp) (*openrtb_ext.ExtImpScaleOut, error) {
	var bidderExt adapters.ExtImpBidder
	if err := json.Unmarshal(imp.Ext, &bidderExt); err != nil {
		return nil, &errortypes.BadInput{
			Message: fmt.Sprintf("imp %s: %s", imp.ID, err.Error()),
		}
	}
	var soExt openrtb_ext.ExtImpScaleOut
	if err := json.Unmarshal(bidderExt.Bidder, &soExt); err != nil {
		return nil, &errortypes.BadInput{
			Message: fmt.Sprintf("imp %s: %s", imp.ID, err.Error()),
		}
	}
	if soExt.ID == "" {
		return nil, &errortypes.BadInput{
			Message: fmt.Sprintf("imp %s: missing placement id", imp.ID),
		}
	}
	return &soExt, nil
}

func (a *adapter) MakeBids(request *openrtb2.BidRequest, externalRequest *adapters.RequestData, response *adapters.ResponseData) (*adapters.BidderResponse, []error) {
	if response.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, []error{&errortypes.BadServerResponse{
			Message: fmt.Sprintf("Unexpected status code: %d.", response.StatusCode),
		}}
	}

	var body adServerResponse
	if err := json.Unmarshal(response.Body, &body); err != nil {
		return nil, []error{&errortypes.BadServerResponse{
			Message: err.Error(),
		}}
	}
	if len(body.Results) == 0 {
		return adapters.NewBidderResponse(), nil
	}

	// One ad per call: only the first result counts, extras are ignored.
	result := &body.Results[0]

	// The imp id is read back out of the request that was sent, never out of
	// the response, closing the request<->response correlation loop.
	impID, err := jsonparser.GetString(externalRequest.Body, "bid", "imp", "[0]", "id")
	if err != nil {
		return nil, []error{&errortypes.BadServerResponse{
			Message: fmt.Sprintf("cannot recover imp id from request body: %s", err.Error()),
		}}
	}
	placementID, err := jsonparser.GetString(externalRequest.Body, "id")
	if err != nil {
		return nil, []error{&errortypes.BadServerResponse{
			Message: fmt.Sprintf("cannot recover placement id from request body: %s", err.Error()),
		}}
	}

	bid := &openrtb2.Bid{
		ID:     placementID,
		ImpID:  impID,
		Price:  result.CPM,
		W:      result.W,
		H:      result.H,
		DealID: result.DealID,
		CrID:   result.CreativeID,
		Exp:    result.TTL,
	}
	if bid.W == 0 {
		bid.W = 1
	}
	if bid.H == 0 {
		bid.H = 1
	}
	if bid.Exp == 0 {
		bid.Exp = defaultTTLSeconds
	}

	typedBid := &adapters.TypedBid{Bid: bid}
	switch classifyResult(result) {
	case formNative:
		adm, err := json.Marshal(decodeNativeAssets(result.NativeAd, result.BeaconURL))
		if err != nil {
			return nil, []error{err}
		}
		bid.AdM = string(adm)
		typedBid.BidType = openrtb_ext.BidTypeNative
	default:
		bid.AdM = createAd(result, impID, marginTopFor(request, impID))
		typedBid.BidType = openrtb_ext.BidTypeBanner
	}

	if len(result.ADomain) > 0 {
		typedBid.BidMeta = &openrtb_ext.ExtBidPrebidMeta{
			AdvertiserDomains: result.ADomain,
			MediaType:         string(typedBid.BidType),
		}
	}

	bidderResponse := adapters.NewBidderResponseWithBidsCapacity(1)
	bidderResponse.Currency = a.currency
	bidderResponse.Bids = append(bidderResponse.Bids, typedBid)
	return bidderResponse, nil
}

// marginTopFor digs the browser-M top margin out of the originating
// impression's bidder params. Defaults to "0" when absent.
func marginTopFor(request *openrtb2.BidRequest, impID string) string {
	for i := range request.Imp {
		if request.Imp[i].ID != impID {
			continue
		}
		if soExt, err := unmarshalExtImpScaleOut(&request.Imp[i]); err == nil && soExt.MarginTop != "" {
			return soExt.MarginTop
		}
		break
	}
	return "0"
}
