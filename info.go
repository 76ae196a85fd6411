package pdftree

// Info summarizes a document for quick inspection: header version,
// cross-reference and object counts, and the trailer in PDF syntax.
type Info struct {
	Version     string
	Objects     int
	XRefSize    int
	MaxObjectID int
	Trailer     string
	Encrypted   bool
}

// Info collects the document summary.
func (d *Document) Info() Info {
	return Info{
		Version:     d.version,
		Objects:     len(d.Table),
		XRefSize:    d.size,
		MaxObjectID: d.maxObj,
		Trailer:     d.Trailer().String(),
		Encrypted:   !d.Trailer().Key("Encrypt").IsNull(),
	}
}
