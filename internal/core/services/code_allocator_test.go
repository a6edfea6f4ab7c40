package services_test

import (
	"testing"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/instituteapps/coa_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acc(id, code, parentID string) domain.Account {
	return domain.Account{AccountID: id, Code: code, ParentAccountID: parentID, Kind: domain.Asset}
}

func TestNextAccountCode_Root(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Account
		want     string
	}{
		{
			name:     "empty chart starts at 1",
			accounts: nil,
			want:     "1",
		},
		{
			name: "max root plus one",
			accounts: []domain.Account{
				acc("a", "1", ""),
				acc("b", "2", ""),
				acc("c", "4", ""),
			},
			want: "5",
		},
		{
			name: "non-numeric root codes are skipped",
			accounts: []domain.Account{
				acc("a", "1", ""),
				acc("b", "X", ""),
			},
			want: "2",
		},
		{
			name: "virtual accounts never participate",
			accounts: []domain.Account{
				{AccountID: "v", Code: "9", IsVirtual: true},
			},
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.NextAccountCode(tt.accounts, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextAccountCode_Child(t *testing.T) {
	parent := acc("p", "10", "")

	tests := []struct {
		name     string
		accounts []domain.Account
		want     string
	}{
		{
			name:     "first child",
			accounts: []domain.Account{parent},
			want:     "101",
		},
		{
			name: "max suffix plus one",
			accounts: []domain.Account{
				parent,
				acc("a", "101", "p"),
				acc("b", "103", "p"),
			},
			want: "104",
		},
		{
			name: "malformed sibling suffix is ignored, not treated as zero",
			accounts: []domain.Account{
				parent,
				acc("a", "101", "p"),
				acc("b", "10X", "p"),
			},
			want: "102",
		},
		{
			name: "sibling whose code lacks the parent prefix is skipped",
			accounts: []domain.Account{
				parent,
				acc("a", "101", "p"),
				acc("b", "999", "p"),
			},
			want: "102",
		},
		{
			name: "only malformed siblings behaves like first child",
			accounts: []domain.Account{
				parent,
				acc("b", "10X", "p"),
			},
			want: "101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.NextAccountCode(tt.accounts, &parent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextAccountCode_Deterministic(t *testing.T) {
	parent := acc("p", "10", "")
	accounts := []domain.Account{
		parent,
		acc("a", "101", "p"),
		acc("b", "103", "p"),
	}

	first, err := services.NextAccountCode(accounts, &parent)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := services.NextAccountCode(accounts, &parent)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNextAccountCode_EmptyParentCode(t *testing.T) {
	parent := domain.Account{AccountID: "p"}
	_, err := services.NextAccountCode(nil, &parent)
	assert.ErrorIs(t, err, apperrors.ErrMalformedCode)
}
