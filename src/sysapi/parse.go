package sysapi

import (
	"regexp"
	"strings"
)

var (
	startTypeRe  = regexp.MustCompile(`START_TYPE\s*:\s*\d+\s+(\w+)`)
	activeGUIDRe = regexp.MustCompile(`GUID:\s*([0-9a-fA-F-]+)`)
	schemeLineRe = regexp.MustCompile(`([0-9a-fA-F]{8}(?:-[0-9a-fA-F]{4}){3}-[0-9a-fA-F]{12})\s+\(([^)]*)\)`)
)

// parseStartType extracts the START_TYPE token from `sc.exe qc` output.
func parseStartType(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "START_TYPE") {
			continue
		}
		if m := startTypeRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// parseServiceState reports whether `sc.exe query` output shows a RUNNING
// state. The second return is false when no STATE line was found at all.
func parseServiceState(out string) (bool, bool) {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "STATE") {
			return strings.Contains(line, "RUNNING"), true
		}
	}
	return false, false
}

// parseActiveScheme extracts the GUID from `powercfg /getactivescheme`.
func parseActiveScheme(out string) (string, bool) {
	if m := activeGUIDRe.FindStringSubmatch(out); m != nil {
		return m[1], true
	}
	return "", false
}

// parseSchemeList extracts GUID and label pairs from `powercfg /list`, one
// scheme per line, label in parentheses, active scheme marked with a
// trailing asterisk we do not care about.
func parseSchemeList(out string) []PowerScheme {
	var schemes []PowerScheme
	for _, line := range strings.Split(out, "\n") {
		m := schemeLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		schemes = append(schemes, PowerScheme{GUID: m[1], Name: strings.TrimSpace(m[2])})
	}
	return schemes
}
