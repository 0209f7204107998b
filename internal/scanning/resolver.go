package scanning

import (
	"context"
	"net"
)

// Resolve performs a single forward-resolution attempt for target and
// returns the address probes should dial for it. IP literals pass
// through untouched; hostnames resolve to their first IPv4 address (or
// first address of any family when no IPv4 record exists) so resolution
// cost is paid once per target rather than once per probe.
//
// Failure is a normal outcome, not an error: the sentinel
// ResolvedUnknown is returned and the caller falls back to dialing the
// original identifier verbatim. There are no retries and no resolver
// selection; one attempt against the system resolver is sufficient.
func Resolve(ctx context.Context, target string) string {
	if ip := net.ParseIP(target); ip != nil {
		return ip.String()
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, target)
	if err != nil || len(addrs) == 0 {
		return ResolvedUnknown
	}

	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return addrs[0].IP.String()
}
