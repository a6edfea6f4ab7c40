package domain_test

import (
	"testing"

	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToVirtualAccount(t *testing.T) {
	anchor := domain.Account{AccountID: "anchor-1", Code: "102", Kind: domain.Asset}
	rec := domain.EntityRecord{ID: "stu-1", Name: "Amira"}

	acc, err := domain.ToVirtualAccount(domain.SourceStudents, rec, anchor, "S0001")
	require.NoError(t, err)

	assert.Equal(t, "stu-1", acc.AccountID)
	assert.Equal(t, "S0001", acc.Code)
	assert.Equal(t, "Amira", acc.Name)
	assert.Equal(t, "anchor-1", acc.ParentAccountID)
	assert.Equal(t, domain.Asset, acc.Kind)
	assert.True(t, acc.IsLeaf)
	assert.True(t, acc.IsVirtual)
	assert.True(t, acc.Balance.IsZero())
}

func TestToVirtualAccount_NameFallbacks(t *testing.T) {
	anchor := domain.Account{AccountID: "anchor-1", Code: "502", Kind: domain.Expense}

	tests := []struct {
		name   string
		kind   domain.SourceKind
		fields map[string]any
		want   string
	}{
		{
			name:   "student name field",
			kind:   domain.SourceStudents,
			fields: map[string]any{"studentName": "Bilal"},
			want:   "Bilal",
		},
		{
			name:   "expense company name field",
			kind:   domain.SourceExpenses,
			fields: map[string]any{"companyName": "Utilities Co"},
			want:   "Utilities Co",
		},
		{
			name:   "id when nothing resolves",
			kind:   domain.SourceExpenses,
			fields: map[string]any{},
			want:   "e-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.EntityRecord{ID: "e-9", Fields: tt.fields}
			acc, err := domain.ToVirtualAccount(tt.kind, rec, anchor, "E0001")
			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.Name)
		})
	}
}

func TestToVirtualAccount_MissingIDRejected(t *testing.T) {
	_, err := domain.ToVirtualAccount(domain.SourceStudents, domain.EntityRecord{}, domain.Account{}, "S0001")
	assert.Error(t, err)
}

func TestDerivedBalance_SignConvention(t *testing.T) {
	debit := decimal.NewFromInt(700)
	credit := decimal.NewFromInt(200)

	asset := domain.Account{Kind: domain.Asset, DebitTotal: debit, CreditTotal: credit}
	assert.True(t, asset.DerivedBalance().Equal(decimal.NewFromInt(500)))

	liability := domain.Account{Kind: domain.Liability, DebitTotal: debit, CreditTotal: credit}
	assert.True(t, liability.DerivedBalance().Equal(decimal.NewFromInt(-500)))

	revenue := domain.Account{Kind: domain.Revenue, DebitTotal: debit, CreditTotal: credit}
	assert.True(t, revenue.DerivedBalance().Equal(decimal.NewFromInt(-500)))
}
