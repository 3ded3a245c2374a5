/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the service reported to logging and tracing")
}

// Parse must be called once from main, after every imported package had the
// chance to register its flags. Calling flag.Parse from init breaks the test
// binary, which registers its own flags late.
func Parse() {
	flag.Parse()
}
