// Package fingerprint derives a stable cache key from an editorial profile.
//
// The key is FNV-1a 64 over a canonical text form: pillars then voices, each
// sorted by id, one record per line as "kind\x1fid\x1fname\x1fdetail\n".
// It is a derived value for cache invalidation, never an identity.
package fingerprint

import (
	"hash/fnv"
	"slices"
	"strconv"
	"strings"

	"github.com/atelier-ops/content-engine/internal/models"
)

const sep = "\x1f"

// Of returns the 16 hex digit fingerprint of dna
func Of(dna models.EditorialDNA) string {
	pillars := slices.Clone(dna.Pillars)
	slices.SortStableFunc(pillars, func(a, b models.Pillar) int { return strings.Compare(a.ID, b.ID) })
	voices := slices.Clone(dna.Voices)
	slices.SortStableFunc(voices, func(a, b models.Voice) int { return strings.Compare(a.ID, b.ID) })

	h := fnv.New64a()
	for _, p := range pillars {
		h.Write([]byte("pillar" + sep + p.ID + sep + p.Name + sep + p.Description + "\n"))
	}
	for _, v := range voices {
		h.Write([]byte("voice" + sep + v.ID + sep + v.Name + sep + v.Tone + "\n"))
	}

	return pad16(strconv.FormatUint(h.Sum64(), 16))
}

func pad16(s string) string {
	if len(s) >= 16 {
		return s
	}
	return strings.Repeat("0", 16-len(s)) + s
}
