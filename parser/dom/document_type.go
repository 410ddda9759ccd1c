package dom

// doctypeString renders a doctype node the way html5lib prints it: the
// identifiers only appear when at least one of them was given.
func doctypeString(n *Node) string {
	if n.PublicID == nil && n.SystemID == nil {
		return "<!DOCTYPE " + n.Name + ">"
	}
	var public, system string
	if n.PublicID != nil {
		public = *n.PublicID
	}
	if n.SystemID != nil {
		system = *n.SystemID
	}
	return "<!DOCTYPE " + n.Name + " \"" + public + "\" \"" + system + "\">"
}
