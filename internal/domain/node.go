package domain

type NodeKind string

const (
	KindLink   NodeKind = "link"
	KindFolder NodeKind = "folder"
)

// Node is one entry in a bookmark hierarchy: either a link or a folder
// holding an ordered list of child nodes. The root of a tree is always a
// folder, possibly unnamed.
type Node struct {
	Kind     NodeKind
	Name     string
	URL      string
	Children []*Node

	// ID correlates a link with its check outcome. It is assigned while
	// flattening the tree and is never part of any serialized format.
	ID string
}

func NewLink(name, url string) *Node {
	return &Node{Kind: KindLink, Name: name, URL: url}
}

func NewFolder(name string, children ...*Node) *Node {
	return &Node{Kind: KindFolder, Name: name, Children: children}
}

func (n *Node) IsLink() bool { return n.Kind == KindLink }
