package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed hashes.
// Version suffix enables future algorithm migration.
const (
	DomainRow    = "swrlapi/row/v1"
	DomainSchema = "swrlapi/schema/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RowHash computes the content hash of a row from the canonical encoding of
// its cells. Rows with identical cells in the same order hash equally.
func RowHash(row []Value) (string, error) {
	canonical, err := MarshalCanonical(row)
	if err != nil {
		return "", fmt.Errorf("RowHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRow, canonical), nil
}

// SchemaHash computes the hash of a column layout given as (name, aggregate)
// pairs. An empty aggregate marks a plain column.
func SchemaHash(names, aggregates []string) (string, error) {
	if len(names) != len(aggregates) {
		return "", fmt.Errorf("SchemaHash: %d names but %d aggregates", len(names), len(aggregates))
	}
	cols := make([]any, len(names))
	for i := range names {
		cols[i] = map[string]any{"name": names[i], "aggregate": aggregates[i]}
	}
	canonical, err := MarshalCanonical(cols)
	if err != nil {
		return "", fmt.Errorf("SchemaHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSchema, canonical), nil
}

// MustRowHash is like RowHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustRowHash(row []Value) string {
	h, err := RowHash(row)
	if err != nil {
		panic(err)
	}
	return h
}
