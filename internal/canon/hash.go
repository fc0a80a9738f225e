package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests. The version suffix leaves room for
// changing the algorithm later.
const (
	DomainSequence = "tips/sequence/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SequenceDigest identifies an emitted sequence by the exact text of its
// lines. Two runs that wrote identical output share a digest.
func SequenceDigest(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	canonical, err := MarshalCanonical(map[string]any{
		"lines": lines,
	})
	if err != nil {
		return "", fmt.Errorf("SequenceDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSequence, canonical), nil
}
