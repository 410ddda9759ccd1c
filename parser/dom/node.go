package dom

// NodeType uses the DOM standard's numbering.
type NodeType uint16

const (
	ElementNode      NodeType = 1
	TextNode         NodeType = 3
	CommentNode      NodeType = 8
	DocumentNode     NodeType = 9
	DocumentTypeNode NodeType = 10
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	}
	return "unknown"
}

// Namespace of an element. The zero value is the HTML namespace.
type Namespace uint8

const (
	HTMLNamespace Namespace = iota
	MathMLNamespace
	SVGNamespace
)

// Prefix is the short name used in tree dumps, empty for HTML.
func (n Namespace) Prefix() string {
	switch n {
	case MathMLNamespace:
		return "math"
	case SVGNamespace:
		return "svg"
	}
	return ""
}

// NodeID addresses a node inside the Document that created it.
type NodeID int

// NoNode is the parent of the document node and of nodes not yet inserted.
const NoNode NodeID = -1

// Node is a single entry in a Document's arena. Which fields are meaningful
// depends on Type.
type Node struct {
	Type     NodeType
	Parent   NodeID
	Children []NodeID

	// ElementNode and DocumentTypeNode
	Name string
	// ElementNode
	Namespace  Namespace
	Attributes []Attr
	// TextNode and CommentNode
	Data string
	// DocumentTypeNode
	PublicID, SystemID *string
}

// IsForeign reports whether n is an element outside the HTML namespace.
func (n *Node) IsForeign() bool {
	return n.Type == ElementNode && n.Namespace != HTMLNamespace
}
