// Package portspec parses user-supplied port specifications into
// validated port lists. The scan engine receives only the output of
// this package: de-duplicated, range-expanded, bounds-checked integers.
package portspec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/portsight/portsight/internal/errors"
)

const (
	// MinPort and MaxPort bound every accepted port number.
	MinPort = 1
	MaxPort = 65535

	rangeParts = 2
)

// Parse expands a comma-separated port specification such as
// "22,80,4000-4010" into an ascending, de-duplicated list of ports.
// Empty elements are skipped; an entirely empty specification is a
// validation error.
func Parse(spec string) ([]int, error) {
	seen := make(map[int]bool)

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			if err := parseRange(part, seen); err != nil {
				return nil, err
			}
			continue
		}

		port, err := parsePort(part)
		if err != nil {
			return nil, err
		}
		seen[port] = true
	}

	if len(seen) == 0 {
		return nil, errors.NewConfigFieldError(errors.CodeValidation,
			"port specification contains no ports", "ports", spec)
	}

	ports := make([]int, 0, len(seen))
	for port := range seen {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports, nil
}

func parseRange(part string, seen map[int]bool) error {
	bounds := strings.Split(part, "-")
	if len(bounds) != rangeParts {
		return errors.NewConfigFieldError(errors.CodeValidation,
			"invalid port range format", "ports", part)
	}

	start, err := parsePort(strings.TrimSpace(bounds[0]))
	if err != nil {
		return err
	}
	end, err := parsePort(strings.TrimSpace(bounds[1]))
	if err != nil {
		return err
	}
	if start > end {
		return errors.NewConfigFieldError(errors.CodeValidation,
			fmt.Sprintf("range start %d exceeds end %d", start, end), "ports", part)
	}

	for port := start; port <= end; port++ {
		seen[port] = true
	}
	return nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewConfigFieldError(errors.CodeValidation,
			"invalid port number", "ports", s)
	}
	if port < MinPort || port > MaxPort {
		return 0, errors.NewConfigFieldError(errors.CodeValidation,
			fmt.Sprintf("port %d outside %d-%d", port, MinPort, MaxPort), "ports", s)
	}
	return port, nil
}
