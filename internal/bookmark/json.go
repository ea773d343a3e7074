package bookmark

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

// JSONCodec handles the plain JSON bookmark shape: a node with "url" is a
// link, anything else is a folder whose "children" hold further nodes.
type JSONCodec struct{}

type jsonNode struct {
	Name     string     `json:"name,omitempty"`
	URL      string     `json:"url,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func (JSONCodec) Decode(r io.Reader) (*domain.Node, error) {
	var raw jsonNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bookmarks json: %w", err)
	}

	root, err := raw.toDomain()
	if err != nil {
		return nil, err
	}
	if root.Kind != domain.KindFolder {
		return nil, domain.ErrRootNotFolder
	}
	return root, nil
}

func (n jsonNode) toDomain() (*domain.Node, error) {
	if n.URL != "" {
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrLinkWithChildren, n.Name)
		}
		return domain.NewLink(n.Name, n.URL), nil
	}

	folder := domain.NewFolder(n.Name)
	for _, c := range n.Children {
		child, err := c.toDomain()
		if err != nil {
			return nil, err
		}
		folder.Children = append(folder.Children, child)
	}
	return folder, nil
}

func (JSONCodec) Encode(w io.Writer, root *domain.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fromDomain(root)); err != nil {
		return fmt.Errorf("encode bookmarks json: %w", err)
	}
	return nil
}

// jsonOut mirrors jsonNode for encoding. Folders always emit a "children"
// array, even when empty, so the output round-trips as a folder.
type jsonOut struct {
	Name     string     `json:"name,omitempty"`
	URL      string     `json:"url,omitempty"`
	Children *[]jsonOut `json:"children,omitempty"`
}

func fromDomain(n *domain.Node) jsonOut {
	if n.IsLink() {
		return jsonOut{Name: n.Name, URL: n.URL}
	}
	children := make([]jsonOut, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, fromDomain(c))
	}
	return jsonOut{Name: n.Name, Children: &children}
}
