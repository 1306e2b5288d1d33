package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	dErrors "custos/pkg/domain-errors"
)

// Fingerprint hashes an arbitrary snapshot value into a fixed-length hex
// digest. Structurally equal values always produce the same digest: the
// value is marshalled to JSON, re-parsed, and re-marshalled so that map key
// order and the struct-vs-map distinction cannot influence the bytes fed to
// the hash (encoding/json emits map keys sorted).
//
// A nil snapshot ("no prior state") hashes the JSON literal null, which
// yields a distinct, stable digest.
//
// Pure function: no side effects, deterministic for a given input.
func Fingerprint(v any) (string, error) {
	canonical, err := canonicalJSON(v)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "snapshot is not serializable")
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON normalizes v into a canonical JSON byte form. The
// marshal/unmarshal/marshal round trip collapses all mapping-like inputs
// (structs, maps, pointers thereto) into the same sorted-key encoding.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}

	return json.Marshal(normalized)
}
