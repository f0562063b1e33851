package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a route path to the file that serves it from a static
// host: "/" is "index.html", "/guide/setup" is "guide/setup/index.html".
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), " \t\r\n/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}
