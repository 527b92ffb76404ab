package rootree

// Tree is a handle on an AVL root. The zero value is an empty tree.
type Tree struct {
	root *Node
	size int
}

// Root returns the current top node, nil when empty.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of keys.
func (t *Tree) Len() int { return t.size }

// Height returns the height of the whole tree.
func (t *Tree) Height() int { return height(t.root) }

// Insert adds key and reports whether it was new.
func (t *Tree) Insert(key string) bool {
	if Search(t.root, key) != nil {
		return false
	}
	t.root = Insert(t.root, key)
	t.size++
	return true
}

// Delete removes key and reports whether it was present.
func (t *Tree) Delete(key string) bool {
	if Search(t.root, key) == nil {
		return false
	}
	t.root = Delete(t.root, key)
	t.size--
	return true
}

// Search returns the live node for key, or nil.
func (t *Tree) Search(key string) *Node { return Search(t.root, key) }

// Contains reports whether key is present.
func (t *Tree) Contains(key string) bool { return Search(t.root, key) != nil }

// InOrder lists every root in ascending order. Derivative maps are shared
// with the tree.
func (t *Tree) InOrder() []Entry {
	return InOrder(t.root, make([]Entry, 0, t.size))
}

// Keys lists the keys in ascending order.
func (t *Tree) Keys() []string {
	entries := t.InOrder()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Root
	}
	return keys
}
