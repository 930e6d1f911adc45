package chapter

import "exam-worksheet/internal/domain"

// PathIndex maps every node ID to its position path in the forest,
// e.g. the second child of the first root is [0, 1].
func PathIndex(forest []*domain.ChapterNode) map[string][]int {
	index := make(map[string][]int)
	var walk func(nodes []*domain.ChapterNode, prefix []int)
	walk = func(nodes []*domain.ChapterNode, prefix []int) {
		for i, n := range nodes {
			path := make([]int, len(prefix)+1)
			copy(path, prefix)
			path[len(prefix)] = i
			index[n.ID] = path
			walk(n.Children, path)
		}
	}
	walk(forest, nil)
	return index
}

// Find returns the node with the given ID, or nil
func Find(forest []*domain.ChapterNode, id string) *domain.ChapterNode {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// ExpandSelection returns the selected IDs together with all of their descendants.
// IDs that are not in the forest are kept so that raw tag selections still match.
func ExpandSelection(forest []*domain.ChapterNode, selected []string) []string {
	seen := make(map[string]struct{}, len(selected))
	out := make([]string, 0, len(selected))
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	var collect func(n *domain.ChapterNode)
	collect = func(n *domain.ChapterNode) {
		add(n.ID)
		for _, c := range n.Children {
			collect(c)
		}
	}

	for _, id := range selected {
		if n := Find(forest, id); n != nil {
			collect(n)
			continue
		}
		add(id)
	}
	return out
}

// Leaves returns the IDs of all item nodes in depth-first order
func Leaves(forest []*domain.ChapterNode) []string {
	var out []string
	for _, n := range forest {
		if len(n.Children) == 0 {
			out = append(out, n.ID)
			continue
		}
		out = append(out, Leaves(n.Children)...)
	}
	return out
}
