package scaleout

import (
	"regexp"
	"strings"
)

// adForm is decided once per result; every later markup decision switches on it.
type adForm int

const (
	formBannerHTML adForm = iota
	formVideoBillboard
	formVideoGeneric
	formNative
)

const (
	browserMPlayerURL = "https://i.socdm.com/sdk/js/adg-browser-m.js"
	videoPlayerURL    = "https://cdn.apvdr.com/js/VideoAd.min.js"

	adTypeUpperBillboard = "upper_billboard"
)

func classifyResult(result *bidResult) adForm {
	if result.NativeAd != nil && len(result.NativeAd.Assets) > 0 {
		return formNative
	}
	if result.VastXML == "" {
		return formBannerHTML
	}
	if result.LocationParams != nil && result.LocationParams.Option.AdType == adTypeUpperBillboard {
		return formVideoBillboard
	}
	return formVideoGeneric
}

// createAd renders the banner-family forms: raw server markup, or one of the
// two VAST player wrappers. The beacon is injected before the closing body tag
// and the body wrapper itself is stripped from the final creative.
func createAd(result *bidResult, impID string, marginTop string) string {
	var ad string
	switch classifyResult(result) {
	case formVideoBillboard:
		ad = browserMTag(result.VastXML, marginTop)
	case formVideoGeneric:
		ad = videoPlayerTag(impID, result.VastXML)
	default:
		ad = result.Ad
	}
	ad = appendChildToBody(ad, result.Beacon)
	return innerBody(ad)
}

// browserMTag wraps VAST playback instructions in the browser-M player for
// upper-billboard placements.
func browserMTag(vastXML string, marginTop string) string {
	if marginTop == "" {
		marginTop = "0"
	}
	return `<script type="text/javascript" src="` + browserMPlayerURL + `"></script>` +
		`<script type="text/javascript">window.SOBrowserM.init({vastXml: '` + inlineVAST(vastXML) + `', marginTop: '` + marginTop + `'});</script>`
}

// videoPlayerTag wraps VAST playback instructions in the generic video player,
// anchored to a DOM id derived from the impression id.
func videoPlayerTag(impID string, vastXML string) string {
	return `<div id="apvad-` + impID + `"></div>` +
		`<script type="text/javascript" id="apv" src="` + videoPlayerURL + `"></script>` +
		`<script type="text/javascript"> (function(){ new APV.VideoAd({s:"` + impID + `"}).load('` + inlineVAST(vastXML) + `'); })(); </script>`
}

// inlineVAST strips newlines so the XML survives interpolation into a
// single-line inline script literal.
func inlineVAST(vastXML string) string {
	return strings.ReplaceAll(strings.ReplaceAll(vastXML, "\r", ""), "\n", "")
}

// appendChildToBody inserts child immediately before the closing body tag, or
// appends it when the markup has no closing body tag.
func appendChildToBody(ad string, child string) string {
	if child == "" {
		return ad
	}
	if idx := strings.LastIndex(strings.ToLower(ad), "</body>"); idx != -1 {
		return ad[:idx] + child + ad[idx:]
	}
	return ad + child
}

var bodyOpenTag = regexp.MustCompile(`(?i)<body[^>]*>`)

// innerBody returns the content between the first open-body and last
// close-body tag. Markup without a well-formed body pair, including
// single-sided or malformed tags, is returned unchanged.
func innerBody(ad string) string {
	open := bodyOpenTag.FindStringIndex(ad)
	if open == nil {
		return ad
	}
	closing := strings.LastIndex(strings.ToLower(ad), "</body>")
	if closing < open[1] {
		return ad
	}
	return ad[open[1]:closing]
}
