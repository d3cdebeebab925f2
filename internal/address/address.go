// Package address extracts and validates Ethereum addresses from page URLs.
package address

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Explorer-style path segment: /address/ followed by 40 hex characters,
// optionally 0x-prefixed. The capture keeps whatever prefix was present so
// Detect can insist on 0x below.
var pathPattern = regexp.MustCompile(`/address/((?:0x)?[0-9a-fA-F]{40})`)

// Detect extracts the first /address/... segment from a page URL.
// Only a capture that includes the 0x prefix counts as an address; a bare
// 40-hex segment is ignored. Query parameters and fragments are not given
// any special treatment. Pure string matching, no I/O.
func Detect(rawURL string) (string, bool) {
	m := pathPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	if !strings.HasPrefix(m[1], "0x") {
		return "", false
	}
	return m[1], true
}

// IsValid reports whether s is a plausible 0x-prefixed hex address.
func IsValid(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// Normalize returns the EIP-55 checksummed form for display.
func Normalize(s string) string {
	if !common.IsHexAddress(s) {
		return s
	}
	return common.HexToAddress(s).Hex()
}
