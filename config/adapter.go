package config

// Adapter holds the host-level configuration for a single bidder.
type Adapter struct {
	Endpoint string `mapstructure:"endpoint"` // Required
	Disabled bool   `mapstructure:"disabled"`

	// ExtraAdapterInfo is bidder-specific host configuration, passed through to the
	// adapter Builder as an opaque JSON string. ScaleOut reads the ad-server currency
	// override from it.
	ExtraAdapterInfo string `mapstructure:"extra_info"`
}

// Server holds the data center host config passed to adapter Builders.
type Server struct {
	ExternalUrl string `mapstructure:"external_url"`
	GvlID       int    `mapstructure:"gvl_id"`
	DataCenter  string `mapstructure:"data_center"`
}

func (server *Server) Empty() bool {
	return server == nil || (server.DataCenter == "" && server.ExternalUrl == "" && server.GvlID == 0)
}
