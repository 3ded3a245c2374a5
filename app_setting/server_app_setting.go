package app_setting

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// ServerAppSetting carries the non-secret knobs of the api server. Secrets
// and connection strings stay in env; this file is checked in.
type ServerAppSetting struct {
	// Address the http server binds to, e.g. ":6001".
	SERVER_ADDR string `yaml:"SERVER_ADDR"`
	// Directory uploaded assets are written to and served from.
	ASSETS_DIR string `yaml:"ASSETS_DIR"`
	// Upper bound of a multipart request body, in megabytes.
	MAX_UPLOAD_SIZE_MB int64 `yaml:"MAX_UPLOAD_SIZE_MB"`
	// Skip redis-backed profile counters entirely when true, used for local
	// runs without a redis instance.
	DISABLE_PROFILE_STATS bool `yaml:"DISABLE_PROFILE_STATS"`
}

// DefaultServerAppSetting matches the checked-in server.yaml. Used as the
// fallback when no config path is given.
func DefaultServerAppSetting() ServerAppSetting {
	return ServerAppSetting{
		SERVER_ADDR:        ":6001",
		ASSETS_DIR:         "public/assets",
		MAX_UPLOAD_SIZE_MB: 30,
	}
}

func ParseServerAppSetting(path string) (ServerAppSetting, error) {
	c := DefaultServerAppSetting()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, err
	}
	return c, nil
}
