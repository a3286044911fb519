package nav

import (
	"fmt"
)

// node is an arena entry. The tree stores every item in a flat slice and
// addresses relationships by index, so traversal never recurses into owned
// substructures.
type node struct {
	item     Item  // Children field cleared; structure lives in the arena
	parent   int   // index into nodes, -1 for root-level items
	children []int // indexes into nodes, in declaration order
	depth    int   // 1 for root-level items, 2 for their children
}

// Tree is the validated, immutable navigation hierarchy. Built once at load
// time from configuration; all lookups and filters derive fresh values and
// never hand out aliases into the arena.
type Tree struct {
	nodes  []node
	roots  []int          // root-level node indexes, declaration order
	byHref map[string]int // href -> node index (hrefs are globally unique)
}

// ConfigurationError reports a malformed navigation item discovered while
// building the tree. It is fatal at load time: a tree is never constructed
// from input that produces one.
type ConfigurationError struct {
	ID     string // offending item ID, may be empty if the ID itself is missing
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.ID == "" {
		return "navigation config: " + e.Reason
	}
	return fmt.Sprintf("navigation config: item %q: %s", e.ID, e.Reason)
}

// NewTree validates the declared items and builds the arena. The first
// violation encountered is returned as a *ConfigurationError and no tree is
// produced.
func NewTree(items []Item) (*Tree, error) {
	t := &Tree{byHref: make(map[string]int)}

	for _, it := range items {
		if _, err := t.add(it, -1, 1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// add validates a single item and appends it (and its children) to the arena.
func (t *Tree) add(it Item, parent, depth int) (int, error) {
	if depth > MaxDepth {
		return 0, &ConfigurationError{ID: it.ID, Reason: fmt.Sprintf("nested deeper than %d levels", MaxDepth)}
	}
	if it.Label == "" {
		return 0, &ConfigurationError{ID: it.ID, Reason: "missing label"}
	}
	if len(it.Label) > MaxLabelLength {
		return 0, &ConfigurationError{ID: it.ID, Reason: fmt.Sprintf("label exceeds %d characters", MaxLabelLength)}
	}
	if it.Href == "" {
		return 0, &ConfigurationError{ID: it.ID, Reason: "missing href"}
	}
	if prev, dup := t.byHref[it.Href]; dup {
		return 0, &ConfigurationError{
			ID:     it.ID,
			Reason: fmt.Sprintf("duplicate href %q (already used by item %q)", it.Href, t.nodes[prev].item.ID),
		}
	}
	switch it.Visibility {
	case VisibilityPublic, VisibilityAuthenticated:
	case "":
		it.Visibility = VisibilityPublic
	default:
		return 0, &ConfigurationError{ID: it.ID, Reason: fmt.Sprintf("unknown visibility %q", it.Visibility)}
	}
	switch it.Position {
	case PositionPrimary, PositionSecondary:
	case "":
		it.Position = PositionPrimary
	default:
		return 0, &ConfigurationError{ID: it.ID, Reason: fmt.Sprintf("unknown position %q", it.Position)}
	}

	children := it.Children
	it.Children = nil

	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{item: it, parent: parent, depth: depth})
	t.byHref[it.Href] = idx
	if parent < 0 {
		t.roots = append(t.roots, idx)
	}

	for _, child := range children {
		childIdx, err := t.add(child, idx, depth+1)
		if err != nil {
			return 0, err
		}
		t.nodes[idx].children = append(t.nodes[idx].children, childIdx)
	}
	return idx, nil
}

// Len returns the total number of items in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// FindByHref performs a depth-first search visiting parents before children
// and returns a copy of the first item whose href matches exactly.
func (t *Tree) FindByHref(href string) (Item, bool) {
	for _, root := range t.roots {
		if idx, ok := t.findFrom(root, href); ok {
			return t.itemAt(idx), true
		}
	}
	return Item{}, false
}

func (t *Tree) findFrom(idx int, href string) (int, bool) {
	if t.nodes[idx].item.Href == href {
		return idx, true
	}
	for _, child := range t.nodes[idx].children {
		if found, ok := t.findFrom(child, href); ok {
			return found, true
		}
	}
	return 0, false
}

// itemAt materializes the node at idx as a standalone Item, children included.
func (t *Tree) itemAt(idx int) Item {
	n := t.nodes[idx]
	it := n.item
	for _, child := range n.children {
		it.Children = append(it.Children, t.itemAt(child))
	}
	return it
}
