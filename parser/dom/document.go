package dom

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoSuchNode     = errors.New("no such node")
	ErrAlreadyInTree  = errors.New("node already has a parent")
	ErrCannotHaveKids = errors.New("node cannot have children")
	ErrCycle          = errors.New("node would become its own ancestor")
)

// Document owns every node created for it. Nodes refer to each other by
// NodeID, so the tree has no pointer cycles.
type Document struct {
	nodes []Node
	// Quirks is set when the doctype asked for quirks mode.
	Quirks bool
}

// NewDocument returns a document holding only its root node.
func NewDocument() *Document {
	return &Document{
		nodes: []Node{{Type: DocumentNode, Parent: NoNode}},
	}
}

// Root is the document node.
func (d *Document) Root() NodeID {
	return 0
}

// Len is the number of nodes created, attached or not.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Node returns the node for id, or nil if id is not from this document. The
// pointer is only valid until the next node is created.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

func (d *Document) create(n Node) NodeID {
	n.Parent = NoNode
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) CreateElement(name string, ns Namespace, attrs []Attr) NodeID {
	return d.create(Node{
		Type:       ElementNode,
		Name:       name,
		Namespace:  ns,
		Attributes: attrs,
	})
}

func (d *Document) CreateText(data string) NodeID {
	return d.create(Node{Type: TextNode, Data: data})
}

func (d *Document) CreateComment(data string) NodeID {
	return d.create(Node{Type: CommentNode, Data: data})
}

// CreateDoctype keeps missing identifiers distinct from empty ones.
func (d *Document) CreateDoctype(name string, publicID, systemID *string) NodeID {
	return d.create(Node{
		Type:     DocumentTypeNode,
		Name:     name,
		PublicID: publicID,
		SystemID: systemID,
	})
}

// AppendChild inserts child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) error {
	p, c := d.Node(parent), d.Node(child)
	if p == nil {
		return errors.Wrapf(ErrNoSuchNode, "parent %d", parent)
	}
	if c == nil {
		return errors.Wrapf(ErrNoSuchNode, "child %d", child)
	}
	if p.Type != ElementNode && p.Type != DocumentNode {
		return errors.Wrapf(ErrCannotHaveKids, "%s %d", p.Type, parent)
	}
	if c.Parent != NoNode || child == d.Root() {
		return errors.Wrapf(ErrAlreadyInTree, "node %d", child)
	}
	for id := parent; id != NoNode; id = d.Node(id).Parent {
		if id == child {
			return errors.Wrapf(ErrCycle, "appending %d to %d", child, parent)
		}
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	return nil
}

// AppendText adds s to parent, merging it into parent's last child when that
// is a text node. It returns the text node that holds s.
func (d *Document) AppendText(parent NodeID, s string) (NodeID, error) {
	p := d.Node(parent)
	if p == nil {
		return NoNode, errors.Wrapf(ErrNoSuchNode, "parent %d", parent)
	}
	if n := len(p.Children); n > 0 {
		last := p.Children[n-1]
		if t := d.Node(last); t.Type == TextNode {
			t.Data += s
			return last, nil
		}
	}
	id := d.CreateText(s)
	return id, d.AppendChild(parent, id)
}

// String dumps the tree in the html5lib tree-construction test format.
func (d *Document) String() string {
	return d.DumpChildren(d.Root())
}

// DumpChildren dumps the children of parent as the top level of a document,
// which is how html5lib writes the result of a fragment parse.
func (d *Document) DumpChildren(parent NodeID) string {
	var b strings.Builder
	b.WriteString("#document\n")
	if p := d.Node(parent); p != nil {
		for _, id := range p.Children {
			d.dump(&b, id, 0)
		}
	}
	return b.String()
}

func (d *Document) dump(b *strings.Builder, id NodeID, depth int) {
	n := d.Node(id)
	indent := "| " + strings.Repeat("  ", depth)
	b.WriteString(indent)
	switch n.Type {
	case ElementNode:
		b.WriteString("<")
		if prefix := n.Namespace.Prefix(); prefix != "" {
			b.WriteString(prefix + " ")
		}
		b.WriteString(n.Name + ">\n")

		attrs := make([]Attr, len(n.Attributes))
		copy(attrs, n.Attributes)
		sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		for _, a := range attrs {
			b.WriteString(indent + "  " + a.Name + "=\"" + a.Value + "\"\n")
		}
	case TextNode:
		b.WriteString("\"" + n.Data + "\"\n")
	case CommentNode:
		b.WriteString("<!-- " + n.Data + " -->\n")
	case DocumentTypeNode:
		b.WriteString(doctypeString(n) + "\n")
	}

	for _, child := range n.Children {
		d.dump(b, child, depth+1)
	}
}
