// ABOUTME: Atom 1.0 document model used to serialize merged feeds
// ABOUTME: Field order follows the element order written to clients

package responses

import "encoding/xml"

// AtomNamespace is the Atom 1.0 XML namespace
const AtomNamespace = "http://www.w3.org/2005/Atom"

// AtomContentType is the media type of serialized Atom documents
const AtomContentType = "application/atom+xml; charset=utf-8"

// AtomFeed is the root <feed> element
type AtomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	XMLNS   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Author  AtomAuthor  `xml:"author"`
	Links   []AtomLink  `xml:"link"`
	Entries []AtomEntry `xml:"entry"`
}

// AtomAuthor is a person construct
type AtomAuthor struct {
	Name string `xml:"name"`
}

// AtomLink is a <link> element
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

// AtomEntry is an <entry> element
type AtomEntry struct {
	Title   string   `xml:"title"`
	ID      string   `xml:"id"`
	Link    AtomLink `xml:"link"`
	Updated string   `xml:"updated"`
	Summary string   `xml:"summary,omitempty"`
}
