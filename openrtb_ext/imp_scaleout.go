package openrtb_ext

// ExtImpScaleOut defines the contract for bidrequest.imp[i].ext.bidder
type ExtImpScaleOut struct {
	// ID is the ScaleOut placement id. It is the only required parameter.
	ID string `json:"id"`

	// Debug routes the request to the test ad server. DebugURL overrides the
	// test endpoint when set.
	Debug    bool   `json:"debug,omitempty"`
	DebugURL string `json:"debug_url,omitempty"`

	// MarginTop parameterizes the browser-M video player on upper-billboard
	// placements. The ad server treats it as a CSS pixel count.
	MarginTop string `json:"marginTop,omitempty"`
}
