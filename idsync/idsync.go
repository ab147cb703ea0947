// Package idsync implements the snowflake identity module: it derives a
// pseudo-random identifier client-side and announces it to the sync endpoint
// with a single fire-and-forget call.
package idsync

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/asaskevich/govalidator"
	"github.com/golang/glog"

	"github.com/scaleout-ssp/prebid-modules/config"
	"github.com/scaleout-ssp/prebid-modules/util/randomutil"
)

// Status is the outcome of the sync call.
type Status int

const (
	StatusUnknown   Status = 0
	StatusSuccess   Status = 1
	StatusNoContent Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoContent:
		return "no_content"
	default:
		return "unknown"
	}
}

// Sentinel source ids returned for malformed configuration. Bid participation
// continues with the sentinel instead of aborting.
const (
	sourceIDUnset     = "000"
	sourceIDBadLength = "001"
	sourceIDNotHex    = "002"
)

// Result carries the generated identifier together with the sync outcome.
// The identifier is always populated: a failed sync affects only Status.
type Result struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	Status   Status `json:"status"`
}

// Module performs identity generation and syncing. Each GetID call is
// self-contained: there is no shared status state between calls. Concurrent
// GetID calls are safe as long as the injected RandomGenerator is.
type Module struct {
	endpoint string
	sourceID string
	client   *http.Client
	rng      randomutil.RandomGenerator
}

// NewModule builds the identity module. A nil client falls back to
// http.DefaultClient; a nil rng falls back to a time-seeded generator.
func NewModule(cfg config.IDSync, client *http.Client, rng randomutil.RandomGenerator) *Module {
	if client == nil {
		client = http.DefaultClient
	}
	if rng == nil {
		rng = randomutil.NewRandomNumberGenerator()
	}
	return &Module{
		endpoint: cfg.Endpoint,
		sourceID: ResolveSourceID(cfg.SourceID),
		client:   client,
		rng:      rng,
	}
}

// Decode wraps a stored identifier for the host. No transformation.
func Decode(rawID string) map[string]string {
	return map[string]string{"snowflake": rawID}
}

// ResolveSourceID validates the configured 3-character hex partner code,
// degrading to a distinct sentinel per defect. Length is checked before hex
// validity so "zzzz" reports a length problem, not a hex one.
func ResolveSourceID(raw string) string {
	if raw == "" {
		glog.V(2).Info("idsync: sourceid is not configured")
		return sourceIDUnset
	}
	if len(raw) != 3 {
		glog.Warningf("idsync: sourceid %q must be exactly 3 characters", raw)
		return sourceIDBadLength
	}
	if !govalidator.IsHexadecimal(raw) {
		glog.Warningf("idsync: sourceid %q must be hexadecimal", raw)
		return sourceIDNotHex
	}
	return raw
}

// GetID generates a fresh identifier, issues the sync call and reports both.
// Transport failures only degrade the status signal; downstream identity
// resolution must never be blocked by an unreachable sync endpoint.
func (m *Module) GetID(ctx context.Context) Result {
	result := Result{
		ID:       m.generateID(),
		SourceID: m.sourceID,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?sptoken="+url.QueryEscape(result.ID), nil)
	if err != nil {
		glog.Warningf("idsync: building sync request: %v", err)
		return result
	}
	resp, err := m.client.Do(req)
	if err != nil {
		glog.Warningf("idsync: sync call failed: %v", err)
		return result
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	result.Status = statusForCode(resp.StatusCode)
	return result
}

func statusForCode(code int) Status {
	switch code {
	case http.StatusOK:
		return StatusSuccess
	case http.StatusNoContent:
		return StatusNoContent
	default:
		return StatusUnknown
	}
}
