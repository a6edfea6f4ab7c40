package services_test

import (
	"testing"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/instituteapps/coa_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAccountForest_Basic(t *testing.T) {
	accounts := []domain.Account{
		acc("r1", "1", ""),
		acc("c1", "11", "r1"),
		acc("c2", "12", "r1"),
		acc("g1", "111", "c1"),
	}

	roots := services.BuildAccountForest(accounts)
	require.Len(t, roots, 1)
	assert.Equal(t, "1", roots[0].Code)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "11", roots[0].Children[0].Code)
	assert.Equal(t, "12", roots[0].Children[1].Code)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "111", roots[0].Children[0].Children[0].Code)
}

func TestBuildAccountForest_NumericSiblingOrder(t *testing.T) {
	// A plain string sort would put "110" before "12"; sibling order must
	// follow the numeric suffix instead.
	accounts := []domain.Account{
		acc("r1", "1", ""),
		acc("a", "110", "r1"),
		acc("b", "12", "r1"),
		acc("c", "11", "r1"),
	}

	roots := services.BuildAccountForest(accounts)
	require.Len(t, roots, 1)
	got := make([]string, 0, 3)
	for _, child := range roots[0].Children {
		got = append(got, child.Code)
	}
	assert.Equal(t, []string{"11", "12", "110"}, got)
}

func TestBuildAccountForest_MalformedCodesSortLast(t *testing.T) {
	accounts := []domain.Account{
		acc("r1", "1", ""),
		acc("a", "1X", "r1"),
		acc("b", "12", "r1"),
	}

	roots := services.BuildAccountForest(accounts)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "12", roots[0].Children[0].Code)
	assert.Equal(t, "1X", roots[0].Children[1].Code)
}

func TestBuildAccountForest_OrphanBecomesRoot(t *testing.T) {
	accounts := []domain.Account{
		acc("r1", "1", ""),
		acc("o1", "99", "missing-parent"),
	}

	roots := services.BuildAccountForest(accounts)
	require.Len(t, roots, 2)
	codes := []string{roots[0].Code, roots[1].Code}
	assert.Contains(t, codes, "1")
	assert.Contains(t, codes, "99")
}

func TestFindPath(t *testing.T) {
	accounts := []domain.Account{
		acc("r1", "1", ""),
		acc("c1", "11", "r1"),
		acc("g1", "111", "c1"),
	}

	path, err := services.FindPath(accounts, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "11", "111"}, path)
}

func TestFindPath_UnknownID(t *testing.T) {
	_, err := services.FindPath(nil, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindPath_BrokenParentLinkTruncates(t *testing.T) {
	accounts := []domain.Account{
		acc("c1", "11", "missing"),
	}

	path, err := services.FindPath(accounts, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"11"}, path)
}

func TestFindPath_CycleDoesNotHang(t *testing.T) {
	accounts := []domain.Account{
		acc("a", "1", "b"),
		acc("b", "2", "a"),
	}

	path, err := services.FindPath(accounts, "a")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}
