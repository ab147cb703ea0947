package idsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaleout-ssp/prebid-modules/config"
	"github.com/scaleout-ssp/prebid-modules/util/randomutil"
)

type fixedSequence struct {
	vals []int64
	idx  int
}

func (f *fixedSequence) GenerateInt63() int64 {
	v := f.vals[f.idx%len(f.vals)]
	f.idx++
	return v
}

func TestResolveSourceID(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", "000"},
		{"ab", "001"},
		{"abcd", "001"},
		{"zzz", "002"},
		{"1aF", "1aF"},
		{"000", "000"},
		{"fff", "fff"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, ResolveSourceID(test.raw), "sourceid: %q", test.raw)
	}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, map[string]string{"snowflake": "some-id"}, Decode("some-id"))
}

func TestGenerateIDDeterministic(t *testing.T) {
	first := NewModule(config.IDSync{Endpoint: "https://spadsync.com/sync"}, nil, randomutil.NewSeededRandomNumberGenerator(42))
	second := NewModule(config.IDSync{Endpoint: "https://spadsync.com/sync"}, nil, randomutil.NewSeededRandomNumberGenerator(42))
	assert.Equal(t, first.generateID(), second.generateID())
}

func TestGenerateIDSubstitution(t *testing.T) {
	// all-zero randomness leaves every placeholder digit untouched
	m := NewModule(config.IDSync{Endpoint: "https://spadsync.com/sync"}, nil, &fixedSequence{vals: []int64{0}})
	assert.Equal(t, guidTemplate, m.generateID())

	// all-ones randomness flips each placeholder by its scaled nibble
	m = NewModule(config.IDSync{Endpoint: "https://spadsync.com/sync"}, nil, &fixedSequence{vals: []int64{0xf}})
	assert.Equal(t, "efffffff-efff-4fff-bfff-efffffffffff", m.generateID())
}

func TestGenerateIDShape(t *testing.T) {
	m := NewModule(config.IDSync{Endpoint: "https://spadsync.com/sync"}, nil, randomutil.NewSeededRandomNumberGenerator(7))
	id := m.generateID()
	assert.Len(t, id, 36)
	for _, pos := range []int{8, 13, 18, 23} {
		assert.Equal(t, byte('-'), id[pos])
	}
	assert.Equal(t, byte('4'), id[14], "version digit is fixed")
	assert.Contains(t, "89ab", string(id[19]), "variant digit")
}

func TestGetIDStatusMapping(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   Status
	}{
		{http.StatusOK, StatusSuccess},
		{http.StatusNoContent, StatusNoContent},
		{http.StatusInternalServerError, StatusUnknown},
		{http.StatusFound, StatusUnknown},
	}
	for _, test := range tests {
		var gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("sptoken")
			w.WriteHeader(test.statusCode)
		}))

		m := NewModule(config.IDSync{Endpoint: server.URL, SourceID: "1aF"}, server.Client(), randomutil.NewSeededRandomNumberGenerator(1))
		result := m.GetID(context.Background())

		assert.Equal(t, test.expected, result.Status, "status code %d", test.statusCode)
		assert.Equal(t, result.ID, gotToken, "the generated id is the sync token")
		assert.Equal(t, "1aF", result.SourceID)
		server.Close()
	}
}

func TestGetIDSurvivesTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	m := NewModule(config.IDSync{Endpoint: server.URL}, nil, randomutil.NewSeededRandomNumberGenerator(1))
	result := m.GetID(context.Background())

	// the id is still delivered, only the status signal is lost
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, StatusUnknown, result.Status)
	assert.Equal(t, "000", result.SourceID)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "no_content", StatusNoContent.String())
}
