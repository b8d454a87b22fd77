package evaluation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"okr/internal/domain/scoring"
)

// ContentHash fingerprints a draft's scores. Autosave compares hashes to
// suppress redundant writes when nothing changed since the last successful
// save.
func ContentHash(scores []scoring.DetailedScore) string {
	data, err := json.Marshal(scores)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
