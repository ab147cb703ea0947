package scaleout

import (
	"net/url"
)

// Asset-type codes in the ad server's native_ad.assets[].id field.
const (
	nativeAssetTitle       = 1
	nativeAssetImage       = 2
	nativeAssetIcon        = 3
	nativeAssetSponsoredBy = 4
	nativeAssetBody        = 5
	nativeAssetCTA         = 6
	nativeAssetPrivacyLink = 7
)

type nativeAd struct {
	Assets      []nativeAdAsset `json:"assets"`
	Link        nativeAdLink    `json:"link"`
	ImpTrackers []string        `json:"imptrackers"`
}

type nativeAdAsset struct {
	ID    int64          `json:"id"`
	Title *nativeAdTitle `json:"title,omitempty"`
	Img   *nativeAdImage `json:"img,omitempty"`
	Data  *nativeAdData  `json:"data,omitempty"`
}

type nativeAdTitle struct {
	Text string `json:"text"`
}

type nativeAdImage struct {
	URL string `json:"url"`
	W   int64  `json:"w"`
	H   int64  `json:"h"`
}

type nativeAdData struct {
	Value string `json:"value"`
}

type nativeAdLink struct {
	URL           string   `json:"url"`
	ClickTrackers []string `json:"clicktrackers"`
}

// nativeImage is a decoded image asset in the normalized creative.
type nativeImage struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// nativeAssets is the normalized native creative, marshalled into bid.adm for
// assembly by the publisher's template.
type nativeAssets struct {
	Title       string       `json:"title,omitempty"`
	Image       *nativeImage `json:"image,omitempty"`
	Icon        *nativeImage `json:"icon,omitempty"`
	SponsoredBy string       `json:"sponsoredBy,omitempty"`
	Body        string       `json:"body,omitempty"`
	CTA         string       `json:"cta,omitempty"`
	PrivacyLink string       `json:"privacyLink,omitempty"`

	ClickURL           string   `json:"clickUrl,omitempty"`
	ClickTrackers      []string `json:"clickTrackers"`
	ImpressionTrackers []string `json:"impressionTrackers"`
}

// decodeNativeAssets maps the fixed asset-type catalog into the normalized
// creative. Unknown asset types are skipped. The top-level beacon URL joins
// the impression trackers when present.
func decodeNativeAssets(ad *nativeAd, beaconURL string) *nativeAssets {
	decoded := &nativeAssets{
		ClickURL:           ad.Link.URL,
		ClickTrackers:      []string{},
		ImpressionTrackers: []string{},
	}
	if len(ad.Link.ClickTrackers) > 0 {
		decoded.ClickTrackers = ad.Link.ClickTrackers
	}
	if len(ad.ImpTrackers) > 0 {
		decoded.ImpressionTrackers = ad.ImpTrackers
	}
	if beaconURL != "" {
		decoded.ImpressionTrackers = append(decoded.ImpressionTrackers, beaconURL)
	}

	for i := range ad.Assets {
		asset := &ad.Assets[i]
		switch asset.ID {
		case nativeAssetTitle:
			if asset.Title != nil {
				decoded.Title = asset.Title.Text
			}
		case nativeAssetImage:
			if asset.Img != nil {
				decoded.Image = &nativeImage{URL: asset.Img.URL, Width: asset.Img.W, Height: asset.Img.H}
			}
		case nativeAssetIcon:
			if asset.Img != nil {
				decoded.Icon = &nativeImage{URL: asset.Img.URL, Width: asset.Img.W, Height: asset.Img.H}
			}
		case nativeAssetSponsoredBy:
			if asset.Data != nil {
				decoded.SponsoredBy = asset.Data.Value
			}
		case nativeAssetBody:
			if asset.Data != nil {
				decoded.Body = asset.Data.Value
			}
		case nativeAssetCTA:
			if asset.Data != nil {
				decoded.CTA = asset.Data.Value
			}
		case nativeAssetPrivacyLink:
			if asset.Data != nil {
				decoded.PrivacyLink = unescapePrivacyLink(asset.Data.Value)
			}
		}
	}
	return decoded
}

// unescapePrivacyLink percent-decodes the privacy link value. The raw value is
// kept when it does not decode.
func unescapePrivacyLink(raw string) string {
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}
