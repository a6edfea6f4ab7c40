package services

import (
	"testing"

	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeriveVirtualCode_StableAndFixedWidth(t *testing.T) {
	first := deriveVirtualCode(domain.SourceStudents, "student-abc-123")
	second := deriveVirtualCode(domain.SourceStudents, "student-abc-123")

	assert.Equal(t, first, second)
	assert.Len(t, first, 1+virtualCodeWidth)
	assert.Equal(t, "S", first[:1])
}

func TestDeriveVirtualCode_SourcePrefixesDiffer(t *testing.T) {
	student := deriveVirtualCode(domain.SourceStudents, "same-id")
	instructor := deriveVirtualCode(domain.SourceInstructors, "same-id")

	assert.NotEqual(t, student, instructor)
	assert.Equal(t, "T", instructor[:1])
}

func TestUniqueVirtualCode_DisambiguatesCollisions(t *testing.T) {
	taken := map[string]bool{}

	first := uniqueVirtualCode(domain.SourceStudents, "id-1", taken)

	// Force a collision by pre-claiming the derived code of another id.
	derived := deriveVirtualCode(domain.SourceStudents, "id-2")
	taken[derived] = true
	second := uniqueVirtualCode(domain.SourceStudents, "id-2", taken)

	assert.NotEqual(t, first, second)
	assert.Equal(t, derived+"-2", second)
	assert.True(t, taken[second])
}

func TestUniqueVirtualCode_DeterministicSuffixSequence(t *testing.T) {
	derived := deriveVirtualCode(domain.SourceExpenses, "payee-9")
	taken := map[string]bool{derived: true, derived + "-2": true}

	got := uniqueVirtualCode(domain.SourceExpenses, "payee-9", taken)
	assert.Equal(t, derived+"-3", got)
}
