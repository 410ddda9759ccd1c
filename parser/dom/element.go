package dom

// Attr is a name/value pair on an element.
type Attr struct {
	Name, Value string
}

// Attribute looks up an attribute on an element node.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// voidElements never have children, so they are not pushed onto the stack
// of open elements.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether an HTML element of this name has no end tag.
func IsVoid(name string) bool {
	return voidElements[name]
}
