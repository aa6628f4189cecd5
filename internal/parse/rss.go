package parse

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"MarketPress/internal/model"
)

// ItemExtractor turns a raw feed document into headline items.
type ItemExtractor interface {
	Extract(raw string, maxItems int) ([]model.NewsItem, error)
}

// RSSExtractor extracts <item> elements with a streaming XML decoder. CDATA
// wrappers and character references are handled by the decoder; a small entity
// table covers the HTML entities feeds commonly leave in titles.
type RSSExtractor struct{}

// feedEntities extends the decoder beyond the five predefined XML entities.
var feedEntities = map[string]string{
	"nbsp":   " ",
	"mdash":  "—",
	"ndash":  "–",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"hellip": "…",
}

// titleReplacer handles entities that survive XML decoding because the feed
// double-escaped them (e.g. "&amp;#039;" decodes to the literal "&#039;").
var titleReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#039;", "'",
	"&#39;", "'",
	"&nbsp;", " ",
)

// Extract returns up to maxItems headlines. Items missing a title or a link
// (after the guid fallback) are dropped, duplicates by link collapse to the
// first seen, and input order is preserved. maxItems <= 0 means no limit.
func (RSSExtractor) Extract(raw string, maxItems int) ([]model.NewsItem, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Strict = false
	dec.Entity = feedEntities

	var items []model.NewsItem
	seen := make(map[string]struct{})
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode feed: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}
		item, err := decodeItem(dec)
		if err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		if _, dup := seen[item.Link]; dup {
			continue
		}
		seen[item.Link] = struct{}{}
		items = append(items, item)
		if maxItems > 0 && len(items) >= maxItems {
			break
		}
	}
	return items, nil
}

// decodeItem consumes tokens until the matching </item>.
func decodeItem(dec *xml.Decoder) (model.NewsItem, error) {
	var item model.NewsItem
	var guid string
	depth := 1
	field := ""
	var text strings.Builder

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return item, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				switch t.Name.Local {
				case "title", "link", "guid", "pubDate":
					field = t.Name.Local
					text.Reset()
				default:
					field = ""
				}
			}
		case xml.CharData:
			if field != "" {
				text.Write(t)
			}
		case xml.EndElement:
			depth--
			if depth == 1 && field != "" {
				val := strings.TrimSpace(text.String())
				switch field {
				case "title":
					item.Title = titleReplacer.Replace(val)
				case "link":
					item.Link = val
				case "guid":
					guid = val
				case "pubDate":
					item.PubDate = val
				}
				field = ""
			}
		}
	}
	if item.Link == "" {
		item.Link = guid
	}
	return item, nil
}
