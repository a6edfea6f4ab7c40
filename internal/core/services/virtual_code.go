package services

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/instituteapps/coa_backend/internal/core/domain"
)

const virtualCodeWidth = 4

// sourcePrefixes gives each dynamic source a distinguishing code letter, so a
// student's derived code never collides with an instructor's.
var sourcePrefixes = map[domain.SourceKind]string{
	domain.SourceStudents:    "S",
	domain.SourceInstructors: "T",
	domain.SourceExpenses:    "E",
}

// deriveVirtualCode maps an entity id to a stable display code: a source
// prefix letter plus the FNV-1a hash of the id rendered as fixed-width
// base36. The legacy dashboard took the first four characters of the id,
// which collides far too easily; hashing keeps the code stable across reads
// while spreading ids over the full width.
func deriveVirtualCode(kind domain.SourceKind, entityID string) string {
	prefix, ok := sourcePrefixes[kind]
	if !ok {
		prefix = "X"
	}
	h := fnv.New32a()
	h.Write([]byte(entityID))
	base := strings.ToUpper(strconv.FormatUint(uint64(h.Sum32()), 36))
	if len(base) > virtualCodeWidth {
		base = base[:virtualCodeWidth]
	}
	for len(base) < virtualCodeWidth {
		base = "0" + base
	}
	return prefix + base
}

// uniqueVirtualCode derives a code for the entity and, if it is already taken
// within the anchor's children, appends a deterministic numeric suffix until
// it is free. taken is updated with the chosen code.
func uniqueVirtualCode(kind domain.SourceKind, entityID string, taken map[string]bool) string {
	code := deriveVirtualCode(kind, entityID)
	if !taken[code] {
		taken[code] = true
		return code
	}
	for i := 2; ; i++ {
		candidate := code + "-" + strconv.Itoa(i)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}
