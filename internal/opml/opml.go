// ABOUTME: OPML reading and writing for exchanging feed sources with other readers
// ABOUTME: Flattens nested folders on import and writes a flat OPML 2.0 list on export

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Feed is one subscription with the folder it was filed under, if any.
type Feed struct {
	URL    string
	Title  string
	Folder string
}

type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// Parse reads an OPML document and returns its feeds in document order.
func Parse(r io.Reader) ([]Feed, error) {
	var doc opmlXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	var feeds []Feed
	for _, o := range doc.Body.Outlines {
		feeds = append(feeds, collectFeeds(o, "")...)
	}
	return feeds, nil
}

// ParseFile reads OPML data from a file.
func ParseFile(path string) ([]Feed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Write writes feeds as a flat OPML 2.0 document.
func Write(w io.Writer, title string, feeds []Feed) error {
	doc := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: title},
		Body:    bodyXML{Outlines: make([]outlineXML, 0, len(feeds))},
	}
	for _, f := range feeds {
		doc.Body.Outlines = append(doc.Body.Outlines, outlineXML{
			Text:   f.Title,
			Title:  f.Title,
			Type:   "rss",
			XMLURL: f.URL,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func collectFeeds(outline outlineXML, folder string) []Feed {
	var feeds []Feed

	if outline.XMLURL != "" {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		feeds = append(feeds, Feed{URL: outline.XMLURL, Title: title, Folder: folder})
	}

	// An outline without a feed URL is a folder for its children.
	childFolder := folder
	if outline.XMLURL == "" && len(outline.Children) > 0 {
		childFolder = outline.Text
	}
	for _, child := range outline.Children {
		feeds = append(feeds, collectFeeds(child, childFolder)...)
	}

	return feeds
}
