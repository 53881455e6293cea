package address

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// Scheme is the URL scheme of hierarchical ledger addresses.
	Scheme = "acc://"
	// TLD is the suffix of every registered identity URL.
	TLD = ".acme"
	// ACME is the symbol of the network's native token.
	ACME = "ACME"
)

var (
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not a valid ledger URL or lite address")
	// ErrInvalidLiteAddress ...
	ErrInvalidLiteAddress = errors.New("lite address checksum mismatch")

	liteRegexp = regexp.MustCompile(`^[0-9a-f]{48}$`)
)

// LiteFromHash derives the base (signer) form of a lite identity from the
// hash of an ed25519 public key. The address is the first 20 bytes of the
// hash in hex, followed by a 4-byte checksum computed over that hex string.
// The derivation is pure and deterministic.
func LiteFromHash(pubKeyHash []byte) string {
	keyStr := hex.EncodeToString(pubKeyHash[:20])
	checkSum := sha256.Sum256([]byte(keyStr))
	return keyStr + hex.EncodeToString(checkSum[28:])
}

// LiteTokenAccount returns the token-account form of a lite address, ie. the
// base form suffixed with the token symbol it denominates.
func LiteTokenAccount(liteAddr, tokenSymbol string) string {
	return fmt.Sprintf("%s/%s", NormalizeLite(liteAddr), tokenSymbol)
}

// IsLite returns whether the given string is a well-formed lite address in
// base form, including its checksum.
func IsLite(addr string) bool {
	addr = strings.TrimPrefix(addr, Scheme)
	if !liteRegexp.MatchString(addr) {
		return false
	}
	keyStr := addr[:40]
	checkSum := sha256.Sum256([]byte(keyStr))
	return addr[40:] == hex.EncodeToString(checkSum[28:])
}

// NormalizeLite reduces any form of a lite address (with or without scheme,
// with or without a token suffix) to its base signer form. Inputs that are
// not lite addresses are returned unchanged, minus the scheme prefix.
func NormalizeLite(addr string) string {
	addr = strings.TrimPrefix(addr, Scheme)
	if i := strings.Index(addr, "/"); i >= 0 {
		base := addr[:i]
		if liteRegexp.MatchString(base) {
			return base
		}
	}
	return addr
}

// Identity returns the identity component of a hierarchical acc:// URL, ie.
// acc://mycorp.acme/tokens yields acc://mycorp.acme.
func Identity(url string) (string, error) {
	trimmed := strings.TrimPrefix(url, Scheme)
	if trimmed == "" {
		return "", ErrInvalidAddress
	}
	root := trimmed
	if i := strings.Index(trimmed, "/"); i >= 0 {
		root = trimmed[:i]
	}
	if !strings.HasSuffix(root, TLD) {
		return "", ErrInvalidAddress
	}
	return Scheme + root, nil
}

// Ensure prepends the acc:// scheme if missing. Lite addresses are left bare
// since the network accepts them in both spellings.
func Ensure(url string) string {
	if IsLite(url) || strings.HasPrefix(url, Scheme) {
		return url
	}
	return Scheme + url
}

// Join appends a path element to an address, collapsing duplicate slashes.
func Join(base string, elem string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(elem, "/")
}
