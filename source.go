package protojson

import (
	"sync"

	"github.com/pascalhahn/protobuf-json/jsonval"
	jsonsrc "github.com/pascalhahn/protobuf-json/source/json"
)

// Driver converts between JSON text and jsonval trees via a pluggable SPI.
// The default implementation is based on encoding/json and may be swapped
// with SetDriver (for example with the goccy/go-json driver in
// source/gojson). Syntax errors from the underlying decoder are returned
// unchanged for the converter to wrap.
type Driver interface {
	Parse(data []byte) (jsonval.Value, error)
	Format(v jsonval.Value) ([]byte, error)
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = jsonsrc.Driver{}
)

// SetDriver replaces the global JSON driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the default encoding/json-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = jsonsrc.Driver{}
	driverMu.Unlock()
}

func getDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}
