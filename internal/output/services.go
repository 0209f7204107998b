package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/portsight/portsight/internal/scanning"
)

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"

	defaultHTTPPort  = 80
	defaultHTTPSPort = 443
)

// securePorts lists ports conventionally fronted by TLS.
var securePorts = map[int]bool{
	443:  true,
	8443: true,
	9443: true,
	9444: true,
}

// ServiceURLs derives one URL per open observation across all reports,
// de-duplicated on the (host, port, scheme) triple. When scheme is
// empty it is inferred from the port; otherwise it overrides inference
// for every URL. The default port suffix is omitted (80 for http, 443
// for https).
func ServiceURLs(reports []scanning.TargetReport, scheme string) []string {
	seen := make(map[string]bool)
	urls := make([]string, 0)

	for i := range reports {
		report := &reports[i]
		for _, obs := range report.OpenObservations() {
			s := scheme
			if s == "" {
				s = inferScheme(obs.Port)
			}

			key := fmt.Sprintf("%s|%d|%s", report.Target, obs.Port, s)
			if seen[key] {
				continue
			}
			seen[key] = true

			urls = append(urls, serviceURL(s, report.Target, obs.Port))
		}
	}
	return urls
}

func inferScheme(port int) string {
	if securePorts[port] {
		return schemeHTTPS
	}
	return schemeHTTP
}

func serviceURL(scheme, host string, port int) string {
	if isDefaultPort(scheme, port) {
		return scheme + "://" + host
	}
	return scheme + "://" + host + ":" + strconv.Itoa(port)
}

func isDefaultPort(scheme string, port int) bool {
	return (scheme == schemeHTTP && port == defaultHTTPPort) ||
		(scheme == schemeHTTPS && port == defaultHTTPSPort)
}

// WriteServiceList writes the URL list to path, one per line,
// atomically.
func WriteServiceList(path string, urls []string) error {
	var b strings.Builder
	for _, url := range urls {
		b.WriteString(url)
		b.WriteByte('\n')
	}
	return WriteFileAtomic(path, []byte(b.String()))
}
