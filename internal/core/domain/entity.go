package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SourceKind names a dynamic entity collection whose members are projected
// into the chart of accounts as virtual leaf accounts.
type SourceKind string

const (
	SourceStudents    SourceKind = "students"
	SourceInstructors SourceKind = "instructors"
	SourceExpenses    SourceKind = "expenses"
)

// EntityRecord is the raw form of a dynamic entity as stored by the other
// dashboard domains. Only ID and Name are contractually required; everything
// else stays in Fields as an opaque bag.
type EntityRecord struct {
	ID         string
	Name       string
	Obligation decimal.Decimal // Expected amount owed (course fee, opening balance); zero if none
	Fields     map[string]any
}

// entityName resolves the display name for a record, working through the
// per-source field fallbacks the legacy collections use.
func entityName(kind SourceKind, rec EntityRecord) string {
	if rec.Name != "" {
		return rec.Name
	}
	candidates := []string{"name"}
	switch kind {
	case SourceStudents:
		candidates = append(candidates, "studentName", "fullName")
	case SourceInstructors:
		candidates = append(candidates, "instructorName", "fullName")
	case SourceExpenses:
		candidates = append(candidates, "companyName", "payeeName", "title")
	}
	for _, key := range candidates {
		if v, ok := rec.Fields[key].(string); ok && v != "" {
			return v
		}
	}
	return rec.ID
}

// ToVirtualAccount projects a raw entity record into an Account-shaped node
// parented under the given anchor. Virtual accounts are always leaves, carry
// the anchor's kind, and are not editable through the ledger API. The caller
// supplies the code; see the hybrid view's collision-checked derivation.
func ToVirtualAccount(kind SourceKind, rec EntityRecord, anchor Account, code string) (Account, error) {
	if rec.ID == "" {
		return Account{}, fmt.Errorf("entity record from source %q has no id", kind)
	}
	return Account{
		AccountID:       rec.ID,
		Code:            code,
		Name:            entityName(kind, rec),
		ParentAccountID: anchor.AccountID,
		Kind:            anchor.Kind,
		IsLeaf:          true,
		IsVirtual:       true,
		Source:          kind,
		DebitTotal:      decimal.Zero,
		CreditTotal:     decimal.Zero,
		Balance:         decimal.Zero,
	}, nil
}
