package accounts

import "fmt"

// CycleError reports a chart of accounts whose parent chain loops back on
// itself. The tree build aborts; no partial tree is returned.
type CycleError struct {
	AccountID int64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("accounts: parent cycle detected at account %d", e.AccountID)
}

// DanglingParentError reports an account whose parent id does not resolve to
// a known account.
type DanglingParentError struct {
	AccountID int64
	ParentID  int64
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("accounts: account %d references unknown parent %d", e.AccountID, e.ParentID)
}

// Node is one account in the hierarchy with its direct children in source order.
type Node struct {
	Account  Account
	Children []*Node
}

// FlatAccount pairs an account with its depth in the hierarchy, as produced
// by a pre-order traversal.
type FlatAccount struct {
	Account Account
	Depth   int
}

// Tree is the hierarchical chart of accounts. It is rebuilt per request from
// the accounts collaborator and never mutated afterwards.
type Tree struct {
	roots []*Node
	index map[int64]*Node
}

const (
	colorUnvisited = iota
	colorVisiting
	colorDone
)

// BuildTree assembles the forest from a flat account list. It fails with
// DanglingParentError when a parent id is unknown and with CycleError when
// the parent graph is not acyclic.
func BuildTree(list []Account) (*Tree, error) {
	index := make(map[int64]*Node, len(list))
	for _, acc := range list {
		index[acc.ID] = &Node{Account: acc}
	}

	for _, acc := range list {
		if acc.ParentID == nil {
			continue
		}
		if _, ok := index[*acc.ParentID]; !ok {
			return nil, &DanglingParentError{AccountID: acc.ID, ParentID: *acc.ParentID}
		}
	}

	// Walk each ancestor chain once. A node seen twice on the same walk is
	// part of a cycle.
	color := make(map[int64]int, len(list))
	for _, acc := range list {
		if color[acc.ID] != colorUnvisited {
			continue
		}
		var chain []int64
		id := acc.ID
		for {
			if color[id] == colorVisiting {
				return nil, &CycleError{AccountID: id}
			}
			if color[id] == colorDone {
				break
			}
			color[id] = colorVisiting
			chain = append(chain, id)
			parent := index[id].Account.ParentID
			if parent == nil {
				break
			}
			id = *parent
		}
		for _, walked := range chain {
			color[walked] = colorDone
		}
	}

	tree := &Tree{index: index}
	for _, acc := range list {
		node := index[acc.ID]
		if acc.ParentID == nil {
			tree.roots = append(tree.roots, node)
			continue
		}
		parent := index[*acc.ParentID]
		parent.Children = append(parent.Children, node)
	}
	return tree, nil
}

// Roots returns the top-level nodes in source order.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Find returns the node for an account id, or nil when unknown.
func (t *Tree) Find(accountID int64) *Node {
	return t.index[accountID]
}

// ChildrenOf returns the direct children of an account, or nil when the
// account is unknown or a leaf.
func (t *Tree) ChildrenOf(accountID int64) []*Node {
	node := t.index[accountID]
	if node == nil {
		return nil
	}
	return node.Children
}

// Len reports the number of accounts in the tree.
func (t *Tree) Len() int {
	return len(t.index)
}

// Flatten produces a pre-order traversal: every parent before its children,
// siblings in source order. The traversal uses an explicit stack so deeply
// nested hierarchies cannot overflow the call stack.
func (t *Tree) Flatten() []FlatAccount {
	type frame struct {
		node  *Node
		depth int
	}
	out := make([]FlatAccount, 0, len(t.index))
	stack := make([]frame, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: t.roots[i]})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, FlatAccount{Account: top.node.Account, Depth: top.depth})
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: top.node.Children[i], depth: top.depth + 1})
		}
	}
	return out
}
