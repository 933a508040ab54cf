package fstree

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
)

// NodeID identifies a node within its Tree.
type NodeID int

// Node is a single entry in the tree. Directory nodes load their
// children lazily on first expansion.
type Node struct {
	ID       NodeID
	Label    string
	Path     string
	IsDir    bool
	Expanded bool
	Loaded   bool
	Parent   *Node
	Children []*Node
}

// Tree is a lazily populated view of a directory hierarchy with a
// cursor over the visible nodes.
type Tree struct {
	root   *Node
	nodes  map[NodeID]*Node
	nextID NodeID
	cursor int
}

// New builds a tree rooted at path. The root itself starts collapsed
// and unloaded.
func New(path string) (*Tree, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to resolve root %s", path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to stat root %s", path)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("root %s is not a directory", abs)
	}

	t := &Tree{nodes: make(map[NodeID]*Node)}
	t.root = t.newNode(nil, abs, true)
	return t, nil
}

func (t *Tree) newNode(parent *Node, path string, isDir bool) *Node {
	n := &Node{
		ID:     t.nextID,
		Label:  filepath.Base(path),
		Path:   path,
		IsDir:  isDir,
		Parent: parent,
	}
	t.nextID++
	t.nodes[n.ID] = n
	return n
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Node looks up a node by id.
func (t *Tree) Node(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Visible returns the nodes currently shown, in display order: the
// root followed by the children of every expanded directory, pre-order.
func (t *Tree) Visible() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n)
		if n.Expanded {
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(t.root)
	return out
}

// Cursor returns the index of the cursor within Visible().
func (t *Tree) Cursor() int {
	return t.cursor
}

// CursorNode returns the node under the cursor.
func (t *Tree) CursorNode() *Node {
	visible := t.Visible()
	if t.cursor >= len(visible) {
		t.cursor = len(visible) - 1
	}
	return visible[t.cursor]
}

// MoveUp moves the cursor one visible node up.
func (t *Tree) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// MoveDown moves the cursor one visible node down.
func (t *Tree) MoveDown() {
	if t.cursor < len(t.Visible())-1 {
		t.cursor++
	}
}

// Activate expands or collapses the directory node under the cursor,
// loading its children from disk on first expansion. Activating a file
// is a no-op.
func (t *Tree) Activate() error {
	n := t.CursorNode()
	if !n.IsDir {
		return nil
	}
	if !n.Loaded {
		if err := t.loadChildren(n); err != nil {
			return err
		}
		n.Expanded = true
		return nil
	}
	n.Expanded = !n.Expanded
	t.clampCursor()
	return nil
}

func (t *Tree) loadChildren(n *Node) error {
	entries, err := os.ReadDir(n.Path)
	if err != nil {
		return eris.Wrapf(err, "failed to list %s", n.Path)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})
	n.Children = n.Children[:0]
	for _, e := range entries {
		child := t.newNode(n, filepath.Join(n.Path, e.Name()), e.IsDir())
		n.Children = append(n.Children, child)
	}
	n.Loaded = true
	return nil
}

// Reload refreshes the children of the directory at path, if that
// directory has been loaded. Nodes under it are rebuilt from disk, so
// expansion state below the reloaded directory is discarded.
func (t *Tree) Reload(path string) error {
	n := t.findByPath(t.root, path)
	if n == nil || !n.IsDir || !n.Loaded {
		return nil
	}
	t.pruneSubtree(n)
	if err := t.loadChildren(n); err != nil {
		return err
	}
	t.clampCursor()
	return nil
}

func (t *Tree) findByPath(n *Node, path string) *Node {
	if n.Path == path {
		return n
	}
	for _, c := range n.Children {
		if found := t.findByPath(c, path); found != nil {
			return found
		}
	}
	return nil
}

func (t *Tree) pruneSubtree(n *Node) {
	for _, c := range n.Children {
		t.pruneSubtree(c)
		delete(t.nodes, c.ID)
	}
	n.Children = nil
}

// Remove detaches the node with the given id from the tree.
func (t *Tree) Remove(id NodeID) error {
	if id == t.root.ID {
		return eris.New("cannot remove the root node")
	}
	n, ok := t.nodes[id]
	if !ok {
		return eris.Errorf("no node with id %d", id)
	}
	t.pruneSubtree(n)
	delete(t.nodes, id)

	parent := n.Parent
	for i, c := range parent.Children {
		if c == n {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	t.clampCursor()
	return nil
}

// Reroot replaces the whole tree with one rooted at path.
func (t *Tree) Reroot(path string) error {
	fresh, err := New(path)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

// ExpandedDirs returns the paths of every loaded, expanded directory.
// These are the directories worth watching for changes.
func (t *Tree) ExpandedDirs() []string {
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsDir && n.Expanded {
			out = append(out, n.Path)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

func (t *Tree) clampCursor() {
	if max := len(t.Visible()) - 1; t.cursor > max {
		t.cursor = max
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}
