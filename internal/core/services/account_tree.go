package services

import (
	"fmt"
	"sort"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
)

// AccountNode is an account attached to its children, forming one node of the
// rendered chart-of-accounts forest.
type AccountNode struct {
	domain.Account
	Children []*AccountNode `json:"children,omitempty"`
}

// BuildAccountForest turns a flat account set into a forest of root nodes.
// Accounts whose parent id does not resolve to any known account are treated
// as orphan roots rather than errors; a missing ancestor must not make its
// subtree disappear from the chart.
//
// Children under a common parent are ordered by their numeric code suffix,
// falling back to plain string comparison when a suffix does not parse. The
// legacy dashboard sorted codes as strings, which put "10" before "2" once
// sibling counts passed nine.
func BuildAccountForest(accounts []domain.Account) []*AccountNode {
	byID := make(map[string]*AccountNode, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = &AccountNode{Account: acc}
	}

	var roots []*AccountNode
	for _, acc := range accounts {
		node := byID[acc.AccountID]
		if acc.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[acc.ParentAccountID]
		if !ok {
			// Orphan: render as a root instead of dropping or erroring.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(roots, "")
	for _, node := range byID {
		sortSiblings(node.Children, node.Code)
	}
	return roots
}

// sortSiblings orders nodes sharing a parent by numeric code suffix, with
// string comparison as the tie-break and the fallback for malformed codes.
func sortSiblings(nodes []*AccountNode, parentCode string) {
	sort.SliceStable(nodes, func(i, j int) bool {
		si, iok := parseCodeSuffix(nodes[i].Code, parentCode)
		sj, jok := parseCodeSuffix(nodes[j].Code, parentCode)
		if iok && jok && si != sj {
			return si < sj
		}
		if iok != jok {
			return iok // well-formed codes sort before malformed ones
		}
		return nodes[i].Code < nodes[j].Code
	})
}

// FindPath returns the codes of the account's ancestor chain, root first and
// ending with the account itself. It is used to validate that a prospective
// child's code is consistent with its ancestry. Unknown ids return
// apperrors.ErrNotFound; a broken parent link truncates the path at the orphan
// rather than failing.
func FindPath(accounts []domain.Account, accountID string) ([]string, error) {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	acc, ok := byID[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	var path []string
	seen := make(map[string]bool)
	for {
		if seen[acc.AccountID] {
			// Cycle in parent links; stop rather than loop forever.
			break
		}
		seen[acc.AccountID] = true
		path = append(path, acc.Code)
		if acc.IsRoot() {
			break
		}
		parent, ok := byID[acc.ParentAccountID]
		if !ok {
			break
		}
		acc = parent
	}

	// Reverse to root-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
