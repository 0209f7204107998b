package cli

import (
	"bufio"
	"os"
	"strings"

	apperrors "github.com/portsight/portsight/internal/errors"
)

// gatherTargets merges the --targets list and the --target-file
// contents, de-duplicated with input order preserved.
func gatherTargets() ([]string, error) {
	targets := parseTargetList(scanTargets)

	if scanTargetFile != "" {
		fromFile, err := loadTargetFile(scanTargetFile)
		if err != nil {
			return nil, err
		}
		targets = append(targets, fromFile...)
	}

	return dedupeTargets(targets), nil
}

// parseTargetList splits a comma-separated target list, dropping empty
// elements.
func parseTargetList(list string) []string {
	if list == "" {
		return nil
	}

	var targets []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			targets = append(targets, part)
		}
	}
	return targets
}

// loadTargetFile reads one target per line. Blank lines and '#'
// comments (full-line or trailing) are ignored.
func loadTargetFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.ErrTargetFile(path, err)
	}
	defer func() { _ = file.Close() }()

	var targets []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			targets = append(targets, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.ErrTargetFile(path, err)
	}
	return targets, nil
}

func dedupeTargets(targets []string) []string {
	seen := make(map[string]bool, len(targets))
	out := make([]string, 0, len(targets))
	for _, target := range targets {
		if seen[target] {
			continue
		}
		seen[target] = true
		out = append(out, target)
	}
	return out
}
