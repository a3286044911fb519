package nav

import "sort"

// Filter projects the tree down to what a viewer may see. Items marked
// authenticated are dropped (subtree included) for anonymous viewers.
// Surviving siblings are sorted ascending by Order; items sharing an Order
// keep their declaration order. The result is freshly allocated and shares
// no storage with the tree.
func (t *Tree) Filter(isAuthenticated bool) []Item {
	return t.filterLevel(t.roots, isAuthenticated)
}

func (t *Tree) filterLevel(indexes []int, isAuthenticated bool) []Item {
	var out []Item
	for _, idx := range indexes {
		n := t.nodes[idx]
		if n.item.Visibility == VisibilityAuthenticated && !isAuthenticated {
			continue
		}
		it := n.item
		it.Children = t.filterLevel(n.children, isAuthenticated)
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ByPosition narrows a filtered list to items declared for the given
// navigation area. Children follow their parent regardless of their own
// Position value.
func ByPosition(items []Item, pos Position) []Item {
	var out []Item
	for _, it := range items {
		if it.Position == pos {
			out = append(out, it)
		}
	}
	return out
}
