package openrtb_ext

import (
	"github.com/prebid/openrtb/v20/openrtb2"
)

// GetImpIDs returns a list of all imp.id values from the given imps.
func GetImpIDs(imps []openrtb2.Imp) []string {
	impIDs := make([]string, len(imps))
	for i := range imps {
		impIDs[i] = imps[i].ID
	}
	return impIDs
}
