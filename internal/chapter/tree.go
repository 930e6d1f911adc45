// Package chapter builds chapter trees from flat tag-path rows.
package chapter

import (
	"slices"
	"strconv"
	"strings"

	"exam-worksheet/internal/domain"
)

const idSeparator = "-"

// BuildOptions controls how rows are normalised before they are walked
type BuildOptions struct {
	// SubjectPrefix is dropped from the head of a row when the row carries it
	// redundantly (its first ID or label equals the prefix).
	SubjectPrefix string
}

// Build turns root-to-leaf rows into a sorted forest. Nodes are deduplicated by ID
// across all rows and the first row that introduces a node decides its parent.
// Malformed rows are skipped.
func Build(rows []domain.TagPathRow, opts BuildOptions) []*domain.ChapterNode {
	nodes := make(map[string]*domain.ChapterNode)
	var roots []*domain.ChapterNode

	for _, row := range rows {
		ids, labels, ok := normalizeRow(row, opts)
		if !ok {
			continue
		}

		var parent *domain.ChapterNode
		for i, id := range ids {
			node, seen := nodes[id]
			if !seen {
				node = &domain.ChapterNode{ID: id, Label: labels[i]}
				nodes[id] = node
				if parent == nil {
					roots = append(roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
			}
			parent = node
		}
	}

	finalize(roots)
	return roots
}

func normalizeRow(row domain.TagPathRow, opts BuildOptions) ([]string, []string, bool) {
	if len(row.IDs) == 0 || len(row.IDs) != len(row.Labels) {
		return nil, nil, false
	}

	ids := make([]string, len(row.IDs))
	labels := make([]string, len(row.Labels))
	for i := range row.IDs {
		ids[i] = strings.TrimSpace(row.IDs[i])
		labels[i] = strings.TrimSpace(row.Labels[i])
		if ids[i] == "" {
			return nil, nil, false
		}
		if labels[i] == "" {
			labels[i] = ids[i]
		}
	}

	if p := opts.SubjectPrefix; p != "" && len(ids) > 1 && (ids[0] == p || labels[0] == p) {
		ids, labels = ids[1:], labels[1:]
	}
	return ids, labels, true
}

// finalize sorts children at every level and assigns node kinds
func finalize(nodes []*domain.ChapterNode) {
	slices.SortStableFunc(nodes, func(a, b *domain.ChapterNode) int {
		return CompareIDs(a.ID, b.ID)
	})
	for _, n := range nodes {
		if len(n.Children) > 0 {
			n.Kind = domain.ChapterNodeCategory
			finalize(n.Children)
		} else {
			n.Kind = domain.ChapterNodeItem
		}
	}
}

// CompareIDs orders chapter IDs by their numeric segments (경제-1 < 경제-1-1 < 경제-2).
// IDs without numeric segments, or with equal ones, fall back to string comparison.
func CompareIDs(a, b string) int {
	na, nb := NumericSegments(a), NumericSegments(b)
	if len(na) > 0 && len(nb) > 0 {
		if c := slices.Compare(na, nb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// NumericSegments returns the integer segments of a '-' separated ID in order
func NumericSegments(id string) []int {
	var out []int
	for _, seg := range strings.Split(id, idSeparator) {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
