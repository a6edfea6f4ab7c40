package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
)

// NextAccountCode computes the next hierarchical code for a new account under
// the given parent, or at root when parent is nil. It is a pure function of
// its inputs and performs no I/O; the caller is responsible for re-checking
// global uniqueness at commit time, since a concurrent allocation for the same
// parent can produce the same code.
//
// Root case: no roots yet yields "1"; otherwise max numeric root code + 1.
// Child case: no siblings yields parent.Code + "1"; otherwise the maximum
// parsed numeric suffix + 1. Sibling codes whose suffix does not parse are
// skipped entirely (treated as absent, not as zero) so a single corrupt code
// cannot block allocation.
func NextAccountCode(accounts []domain.Account, parent *domain.Account) (string, error) {
	if parent == nil {
		maxRoot := 0
		for _, acc := range accounts {
			if !acc.IsRoot() || acc.IsVirtual {
				continue
			}
			n, err := strconv.Atoi(acc.Code)
			if err != nil || n <= 0 {
				continue
			}
			if n > maxRoot {
				maxRoot = n
			}
		}
		return strconv.Itoa(maxRoot + 1), nil
	}

	if parent.Code == "" {
		return "", fmt.Errorf("%w: parent %s has empty code", apperrors.ErrMalformedCode, parent.AccountID)
	}

	maxSuffix := 0
	for _, acc := range accounts {
		if acc.ParentAccountID != parent.AccountID || acc.IsVirtual {
			continue
		}
		suffix, ok := parseCodeSuffix(acc.Code, parent.Code)
		if !ok {
			continue
		}
		if suffix > maxSuffix {
			maxSuffix = suffix
		}
	}
	return parent.Code + strconv.Itoa(maxSuffix+1), nil
}

// parseCodeSuffix extracts the numeric suffix of a child code relative to its
// parent's code. Returns false for codes that do not start with the parent
// prefix or whose remainder is not a positive integer.
func parseCodeSuffix(code string, parentCode string) (int, bool) {
	if !strings.HasPrefix(code, parentCode) {
		return 0, false
	}
	rest := strings.TrimPrefix(code, parentCode)
	if rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
