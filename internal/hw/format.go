package hw

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderTokens are vendor strings that carry no information. Firmware
// frequently ships these instead of leaving the field blank.
var placeholderTokens = map[string]bool{
	"TO BE FILLED BY O.E.M.": true,
	"SYSTEM PRODUCT NAME":    true,
	"DEFAULT STRING":         true,
	"NOT SPECIFIED":          true,
	"UNKNOWN":                true,
	"UNDEFINED":              true,
	"INVALID":                true,
	"N/A":                    true,
}

// IsPlaceholder reports whether s is empty or a known firmware junk token.
func IsPlaceholder(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || placeholderTokens[strings.ToUpper(t)]
}

var msModelSuffix = regexp.MustCompile(`(?i)\s*\(MS-[0-9A-F]+\)$`)

// CleanBoardProduct strips internal model-code suffixes like " (MS-7E49)"
// from a board product string.
func CleanBoardProduct(s string) string {
	return strings.TrimSpace(msModelSuffix.ReplaceAllString(s, ""))
}

// ShortVendor maps verbose manufacturer strings to their common short names.
func ShortVendor(name string) string {
	s := strings.TrimSpace(name)
	u := strings.ToUpper(s)
	switch {
	case strings.Contains(u, "MICRO-STAR"), strings.HasPrefix(u, "MSI"), strings.HasPrefix(u, "MS-"):
		return "MSI"
	case strings.Contains(u, "ASUSTEK"), strings.Contains(u, "ASUS"):
		return "ASUS"
	case strings.Contains(u, "GIGABYTE"):
		return "Gigabyte"
	case strings.Contains(u, "ASROCK"):
		return "ASRock"
	case strings.Contains(u, "LENOVO"):
		return "Lenovo"
	case strings.Contains(u, "HEWLETT-PACKARD"), strings.HasPrefix(u, "HP"):
		return "HP"
	case strings.Contains(u, "DELL"):
		return "Dell"
	}
	if s == "" {
		return "N/A"
	}
	return s
}

var cpuNoise = regexp.MustCompile(`(?i)\(R\)|\(TM\)|\bCPU\b|with Radeon Graphics`)

// CleanCPUModel removes trademark markers and filler words from a CPU
// model string, e.g. "AMD Ryzen 7 5800X 8-Core Processor".
func CleanCPUModel(name string) string {
	if name == "" {
		return "N/A"
	}
	s := cpuNoise.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(s), " ")
}

var wsRun = regexp.MustCompile(`\s+`)

// NormalizeName lower-cases a device name and collapses whitespace runs,
// producing the identity key used when merging entries across adapters.
func NormalizeName(s string) string {
	return wsRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// FormatGB renders a byte count as a decimal-one gigabyte string, the way
// the report displays capacities. Zero renders as "N/A"; a present
// capacity never rounds down to the zero string.
func FormatGB(b uint64) string {
	if b == 0 {
		return "N/A"
	}
	gb := float64(b) / (1 << 30)
	if gb < 0.1 {
		gb = 0.1
	}
	return fmt.Sprintf("%.1f GB", gb)
}

// FormatClockGHz renders a megahertz value as gigahertz; zero is unknown.
func FormatClockGHz(mhz float64) string {
	if mhz <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f GHz", mhz/1000)
}
