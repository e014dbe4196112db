package models

// NodeKind classifies an entry in a directory tree snapshot.
type NodeKind string

const (
	KindDirectory NodeKind = "directory"
	KindFile      NodeKind = "file"
	// KindLimit marks a truncated listing: the directory had more entries
	// than the scanner's sibling cap.
	KindLimit NodeKind = "limit"
	// KindPlaceholder stands in for the contents of a directory past the
	// scanner's depth limit.
	KindPlaceholder NodeKind = "placeholder"
)

// TreeNode is one node of a structure-only directory snapshot. Children
// appear in whatever order the underlying capability yielded them; the
// order is host-dependent and unspecified. Error carries a human-readable
// message when enumeration of this directory failed partway, in which case
// Children holds whatever was collected before the failure.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path,omitempty"`
	Kind     NodeKind    `json:"kind"`
	Children []*TreeNode `json:"children,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// CountKind returns the number of direct children of the given kind.
func (n *TreeNode) CountKind(kind NodeKind) int {
	if n == nil {
		return 0
	}
	count := 0
	for _, c := range n.Children {
		if c.Kind == kind {
			count++
		}
	}
	return count
}

// FindChild returns the direct child with the given name, or nil.
func (n *TreeNode) FindChild(name string) *TreeNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
