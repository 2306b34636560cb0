package feed

import (
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

var allowedSchemes = []string{"http", "https"}

// newSafeClient returns a client that refuses private, loopback and
// link-local targets after DNS resolution.
func newSafeClient(timeout time.Duration, ports []int) *http.Client {
	if len(ports) == 0 {
		ports = DefaultAllowedPorts
	}

	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(ports...).
		Build()

	return safeurl.Client(config).Client
}
