package dto

// AccountTreeNode is the rendered form of one node of the hybrid forest.
type AccountTreeNode struct {
	AccountResponse
	Children []AccountTreeNode `json:"children,omitempty"`
}

// AccountPathResponse is the ancestor code chain of one account, root first.
type AccountPathResponse struct {
	AccountID string   `json:"accountID"`
	Path      []string `json:"path"`
}
