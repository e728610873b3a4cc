package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for page fingerprints.
// Version suffix enables future algorithm migration.
const DomainPage = "biblioteca/page/v1"

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a content-addressed ID for a laid-out page.
// Two pages share a fingerprint exactly when they have the same profile and
// the same instructions in the same order.
func Fingerprint(profile PageProfile, instrs []DrawInstruction) (string, error) {
	canonical, err := MarshalPage(profile, instrs)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPage, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when instructions come from the layout engine.
func MustFingerprint(profile PageProfile, instrs []DrawInstruction) string {
	fp, err := Fingerprint(profile, instrs)
	if err != nil {
		panic(err)
	}
	return fp
}
