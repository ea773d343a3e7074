// Package prune rebuilds a bookmark tree from check outcomes: unreachable
// links are dropped and folders left without surviving children disappear
// with them. The input tree is never mutated.
package prune

import "github.com/rojanmagar2001/tabtidy/internal/domain"

// Stats counts prune decisions. Missing tracks links whose identity had no
// outcome at all, which indicates a dispatcher bug upstream.
type Stats struct {
	Links   int
	Kept    int
	Dropped int
	Missing int
}

// Prune returns a new tree containing only reachable links and the folders
// needed to hold them. The root folder is always returned, even when empty,
// so the result is always a valid tree.
func Prune(root *domain.Node, outcomes domain.OutcomeSet) (*domain.Node, Stats) {
	var st Stats
	kept := pruneNode(root, outcomes, &st)
	if kept == nil {
		kept = &domain.Node{Kind: domain.KindFolder, Name: root.Name}
	}
	return kept, st
}

func pruneNode(n *domain.Node, outcomes domain.OutcomeSet, st *Stats) *domain.Node {
	if n.IsLink() {
		st.Links++
		res, ok := outcomes[n.ID]
		if !ok {
			st.Missing++
			st.Dropped++
			return nil
		}
		if !res.Reachable {
			st.Dropped++
			return nil
		}
		st.Kept++
		cp := *n
		return &cp
	}

	folder := &domain.Node{Kind: domain.KindFolder, Name: n.Name}
	for _, c := range n.Children {
		if kept := pruneNode(c, outcomes, st); kept != nil {
			folder.Children = append(folder.Children, kept)
		}
	}
	if len(folder.Children) == 0 {
		return nil
	}
	return folder
}
