package canvas

import (
	"os"

	logging "github.com/op/go-logging"
)

// ConfigureLogging sets up the go-logging backend for the driver packages.
// PIXELFLOW_LOGLEVEL=DEBUG turns on frame-level chatter.
func ConfigureLogging() {
	if os.Getenv("PIXELFLOW_LOGLEVEL") == "DEBUG" {
		logging.SetLevel(logging.DEBUG, "")
	} else {
		logging.SetLevel(logging.INFO, "")
	}
	logging.SetFormatter(logging.MustStringFormatter("%{level:.1s}%{time:0102 15:04:05.000000} %{pid} %{module} %{shortfile}] %{message}"))
}
