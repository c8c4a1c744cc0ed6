package cmd

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/nmosnav/pkg/settings"
)

// nodeRootURL turns a node address into the URL browsing starts from. addr
// is "host" or "host:port"; without a colon the default port is appended.
// Nothing past the presence of the colon is validated: a bad host or port
// shows up as a fetch error on the first screen.
func nodeRootURL(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("node address is empty")
	}
	if !strings.Contains(addr, ":") {
		addr += ":" + settings.DefaultPort
	}
	return "http://" + addr + "/", nil
}
