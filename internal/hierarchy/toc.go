package hierarchy

// TOCEntry is one row of a generated table of contents.
type TOCEntry struct {
	Title string
	Level int
	Part  *Part
}

// TOC lists every section in the same pre-order that flattening uses.
func (d *Document) TOC() []TOCEntry {
	var entries []TOCEntry
	var walk func(p *Part)
	walk = func(p *Part) {
		entries = append(entries, TOCEntry{Title: p.HeadingText(), Level: p.Level(), Part: p})
		for _, sub := range p.subParts {
			walk(sub)
		}
	}
	for _, p := range d.parts {
		walk(p)
	}
	return entries
}
