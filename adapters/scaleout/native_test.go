package scaleout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNativeAssets(t *testing.T) {
	ad := &nativeAd{
		Assets: []nativeAdAsset{
			{ID: nativeAssetTitle, Title: &nativeAdTitle{Text: "title text"}},
			{ID: nativeAssetImage, Img: &nativeAdImage{URL: "https://img.example/main.png", W: 300, H: 250}},
			{ID: nativeAssetIcon, Img: &nativeAdImage{URL: "https://img.example/icon.png", W: 50, H: 50}},
			{ID: nativeAssetSponsoredBy, Data: &nativeAdData{Value: "Acme"}},
			{ID: nativeAssetBody, Data: &nativeAdData{Value: "body copy"}},
			{ID: nativeAssetCTA, Data: &nativeAdData{Value: "Buy now"}},
			{ID: nativeAssetPrivacyLink, Data: &nativeAdData{Value: "https%3A%2F%2Fprivacy.example%2Fpolicy"}},
			{ID: 99, Data: &nativeAdData{Value: "unknown type is skipped"}},
		},
		Link: nativeAdLink{
			URL:           "https://landing.example",
			ClickTrackers: []string{"https://click.example/1"},
		},
		ImpTrackers: []string{"https://imp.example/1"},
	}

	decoded := decodeNativeAssets(ad, "https://beacon.example/i")
	assert.Equal(t, "title text", decoded.Title)
	assert.Equal(t, &nativeImage{URL: "https://img.example/main.png", Width: 300, Height: 250}, decoded.Image)
	assert.Equal(t, &nativeImage{URL: "https://img.example/icon.png", Width: 50, Height: 50}, decoded.Icon)
	assert.Equal(t, "Acme", decoded.SponsoredBy)
	assert.Equal(t, "body copy", decoded.Body)
	assert.Equal(t, "Buy now", decoded.CTA)
	assert.Equal(t, "https://privacy.example/policy", decoded.PrivacyLink)
	assert.Equal(t, "https://landing.example", decoded.ClickURL)
	assert.Equal(t, []string{"https://click.example/1"}, decoded.ClickTrackers)
	assert.Equal(t, []string{"https://imp.example/1", "https://beacon.example/i"}, decoded.ImpressionTrackers)
}

func TestDecodeNativeAssetsMinimal(t *testing.T) {
	ad := &nativeAd{
		Assets: []nativeAdAsset{
			{ID: nativeAssetTitle, Title: &nativeAdTitle{Text: "title text"}},
			{ID: nativeAssetSponsoredBy, Data: &nativeAdData{Value: "Acme"}},
		},
	}

	decoded := decodeNativeAssets(ad, "")
	assert.Equal(t, "title text", decoded.Title)
	assert.Equal(t, "Acme", decoded.SponsoredBy)
	// tracker lists are always present, even when empty
	assert.Equal(t, []string{}, decoded.ClickTrackers)
	assert.Equal(t, []string{}, decoded.ImpressionTrackers)
}

func TestDecodeNativeAssetsBeaconOnly(t *testing.T) {
	decoded := decodeNativeAssets(&nativeAd{Assets: []nativeAdAsset{{ID: nativeAssetTitle, Title: &nativeAdTitle{Text: "t"}}}}, "https://beacon.example/i")
	assert.Equal(t, []string{"https://beacon.example/i"}, decoded.ImpressionTrackers)
}

func TestUnescapePrivacyLink(t *testing.T) {
	assert.Equal(t, "https://privacy.example/policy?a=1&b=2", unescapePrivacyLink("https%3A%2F%2Fprivacy.example%2Fpolicy%3Fa%3D1%26b%3D2"))
	// values that do not decode are passed through untouched
	assert.Equal(t, "100%zz", unescapePrivacyLink("100%zz"))
}
