package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/scaleout-ssp/prebid-modules/config"
	"github.com/scaleout-ssp/prebid-modules/router"
)

const configFileName = "scaleout"

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	if err := serve(cfg); err != nil {
		glog.Exitf("server failed: %v", err)
	}
}

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	glog.Infof("Listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
