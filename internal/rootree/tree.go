package rootree

/*
Package rootree is the ordered root registry: an AVL tree keyed by root
string. Each node carries the derived words seen for its root together with
an occurrence counter.

Rules:
- Keys are unique; inserting an existing key leaves the tree untouched.
- Heights are cached per node, height(nil) = 0.
- Every node keeps |height(left) - height(right)| <= 1 after Insert and Delete.
- Nothing here validates keys; callers normalize and check tokens first.
*/

// Node is a single root in the tree. Children are owned by their parent.
type Node struct {
	Key     string
	Left    *Node
	Right   *Node
	Height  int
	Derived map[string]int
}

func newNode(key string) *Node {
	return &Node{Key: key, Height: 1, Derived: make(map[string]int)}
}

// Entry is one root and its derived words, as produced by InOrder.
type Entry struct {
	Root        string
	Derivatives map[string]int
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Height
}

func balance(n *Node) int {
	if n == nil {
		return 0
	}
	return height(n.Left) - height(n.Right)
}

func fix(n *Node) {
	n.Height = 1 + max(height(n.Left), height(n.Right))
}

func rotateRight(y *Node) *Node {
	x := y.Left
	t2 := x.Right
	x.Right = y
	y.Left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *Node) *Node {
	y := x.Right
	t2 := y.Left
	y.Left = x
	x.Right = t2
	fix(x)
	fix(y)
	return y
}

// Insert adds key below n and returns the new subtree root.
func Insert(n *Node, key string) *Node {
	if n == nil {
		return newNode(key)
	}
	switch {
	case key < n.Key:
		n.Left = Insert(n.Left, key)
	case key > n.Key:
		n.Right = Insert(n.Right, key)
	default:
		return n
	}

	fix(n)
	b := balance(n)
	switch {
	case b > 1 && key < n.Left.Key:
		return rotateRight(n)
	case b < -1 && key > n.Right.Key:
		return rotateLeft(n)
	case b > 1 && key > n.Left.Key:
		n.Left = rotateLeft(n.Left)
		return rotateRight(n)
	case b < -1 && key < n.Right.Key:
		n.Right = rotateRight(n.Right)
		return rotateLeft(n)
	}
	return n
}

// Delete removes key below n and returns the new subtree root. A node with
// two children takes over the key and derived words of its in-order
// successor, which is then removed from the right subtree.
func Delete(n *Node, key string) *Node {
	if n == nil {
		return nil
	}
	switch {
	case key < n.Key:
		n.Left = Delete(n.Left, key)
	case key > n.Key:
		n.Right = Delete(n.Right, key)
	default:
		if n.Left == nil {
			return n.Right
		}
		if n.Right == nil {
			return n.Left
		}
		succ := minNode(n.Right)
		n.Key = succ.Key
		n.Derived = succ.Derived
		n.Right = Delete(n.Right, succ.Key)
	}

	fix(n)
	b := balance(n)
	switch {
	case b > 1 && balance(n.Left) >= 0:
		return rotateRight(n)
	case b > 1:
		n.Left = rotateLeft(n.Left)
		return rotateRight(n)
	case b < -1 && balance(n.Right) <= 0:
		return rotateLeft(n)
	case b < -1:
		n.Right = rotateRight(n.Right)
		return rotateLeft(n)
	}
	return n
}

func minNode(n *Node) *Node {
	for n.Left != nil {
		n = n.Left
	}
	return n
}

// Search returns the node holding key, or nil. The node is live: callers may
// update its Derived map in place.
func Search(n *Node, key string) *Node {
	for n != nil {
		switch {
		case key < n.Key:
			n = n.Left
		case key > n.Key:
			n = n.Right
		default:
			return n
		}
	}
	return nil
}

// InOrder appends every entry below n to out in ascending key order.
func InOrder(n *Node, out []Entry) []Entry {
	if n == nil {
		return out
	}
	out = InOrder(n.Left, out)
	out = append(out, Entry{Root: n.Key, Derivatives: n.Derived})
	return InOrder(n.Right, out)
}
