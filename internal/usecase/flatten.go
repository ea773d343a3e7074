package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

// Flatten walks the tree depth-first and returns one CheckRequest per link,
// in stable traversal order. Each link gets a fresh identity assigned to both
// the node and the request so outcomes can be correlated back during pruning.
// Structural violations (empty link URL, folder with URL, link with children,
// a cycle) abort before any request is produced.
func Flatten(root *domain.Node, timeout time.Duration) ([]domain.CheckRequest, error) {
	if root == nil {
		return nil, domain.ErrNilTree
	}
	if root.Kind != domain.KindFolder {
		return nil, domain.ErrRootNotFolder
	}

	var reqs []domain.CheckRequest
	seen := make(map[*domain.Node]struct{})

	var walk func(n *domain.Node) error
	walk = func(n *domain.Node) error {
		if _, ok := seen[n]; ok {
			return domain.ErrCycle
		}
		seen[n] = struct{}{}

		switch n.Kind {
		case domain.KindLink:
			if n.URL == "" {
				return fmt.Errorf("%w: %q", domain.ErrEmptyURL, n.Name)
			}
			if len(n.Children) > 0 {
				return fmt.Errorf("%w: %q", domain.ErrLinkWithChildren, n.Name)
			}
			n.ID = uuid.NewString()
			reqs = append(reqs, domain.CheckRequest{ID: n.ID, URL: n.URL, Timeout: timeout})
		case domain.KindFolder:
			if n.URL != "" {
				return fmt.Errorf("%w: %q", domain.ErrFolderWithURL, n.Name)
			}
			for _, c := range n.Children {
				if err := walk(c); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unknown node kind %q", n.Kind)
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return reqs, nil
}
