package adapters

import (
	"encoding/json"
	"net/http"

	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/scaleout-ssp/prebid-modules/config"
	"github.com/scaleout-ssp/prebid-modules/openrtb_ext"
)

// Bidder describes how to connect to external demand.
type Bidder interface {
	// MakeRequests makes the HTTP requests which should be made to fetch bids.
	//
	// Bidder implementations can assume that the incoming BidRequest has passed validation.
	// However, they may have other custom validation rules for the bidder params, in which
	// case they can return errors alongside (or instead of) the requests.
	//
	// If the error is caused by bad user input, return an errortypes.BadInput.
	MakeRequests(request *openrtb2.BidRequest, reqInfo *ExtraRequestInfo) ([]*RequestData, []error)

	// MakeBids unpacks the server's response into Bids.
	//
	// The bids can be nil (for no bids), but should not contain nil elements.
	//
	// If the error was caused by bad user input, return an errortypes.BadInput.
	// If the error was caused by a bad server response, return an errortypes.BadServerResponse.
	MakeBids(internalRequest *openrtb2.BidRequest, externalRequest *RequestData, response *ResponseData) (*BidderResponse, []error)
}

// Builder constructs the bidder implementation for the given bidder name and host config.
type Builder func(bidderName openrtb_ext.BidderName, config config.Adapter, server config.Server) (Bidder, error)

// ExtraRequestInfo carries auction-level context a bidder may need when building requests.
type ExtraRequestInfo struct {
	PbsEntryPoint string
}

// RequestData packages together the fields needed to make an http.Request.
type RequestData struct {
	Method  string
	Uri     string
	Body    []byte
	Headers http.Header
	ImpIDs  []string
}

// ResponseData packages together information from the server's http.Response.
type ResponseData struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// ExtImpBidder can be used by Bidders to unmarshal any request.imp[i].ext.
type ExtImpBidder struct {
	Prebid json.RawMessage `json:"prebid"`

	// Bidder contains the bidder-specific extension. Bidders should unmarshal this
	// using their corresponding openrtb_ext.ExtImp{Bidder} struct.
	//
	// For example, the ScaleOut bidder should unmarshal this with an
	// openrtb_ext.ExtImpScaleOut struct.
	Bidder json.RawMessage `json:"bidder"`
}

// BidderResponse wraps the server's response with the list of bids and the currency used by the bidder.
type BidderResponse struct {
	Currency string
	Bids     []*TypedBid
}

// NewBidderResponseWithBidsCapacity create a new BidderResponse initialising the bids array capacity
func NewBidderResponseWithBidsCapacity(capacity int) *BidderResponse {
	return &BidderResponse{
		Bids: make([]*TypedBid, 0, capacity),
	}
}

// NewBidderResponse create a new BidderResponse initialising the bids array
func NewBidderResponse() *BidderResponse {
	return NewBidderResponseWithBidsCapacity(0)
}

// TypedBid packages the openrtb2.Bid with any bidder-specific information that PBS needs to populate an
// OpenRTB SeatBid.
//
// TypedBid.Bid.Ext will become "response.seatbid[i].bid.ext.bidder" in the final OpenRTB response.
// TypedBid.BidMeta will become "response.seatbid[i].bid.ext.prebid.meta" in the final OpenRTB response.
// TypedBid.BidType will become "response.seatbid[i].bid.ext.prebid.type" in the final OpenRTB response.
type TypedBid struct {
	Bid          *openrtb2.Bid
	BidMeta      *openrtb_ext.ExtBidPrebidMeta
	BidType      openrtb_ext.BidType
	DealPriority int
}
