package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseModList counts the mods listed by the server's mods page.
// The HTML page links every mod archive; the XML form lists <Mod> entries.
func ParseModList(raw string) (int, bool) {
	if !strings.Contains(raw, "<") {
		return 0, false
	}

	if count, ok := countModLinks(raw); ok {
		return count, true
	}

	if m := modsBlockRe.FindStringSubmatch(raw); m != nil {
		return len(modEntryTag.FindAllStringIndex(m[1], -1)), true
	}
	return 0, false
}

// countModLinks walks the HTML tokens and counts distinct links to mod archives.
// It reports false when the document is not an HTML page.
func countModLinks(raw string) (int, bool) {
	z := html.NewTokenizer(strings.NewReader(raw))
	seen := make(map[string]struct{})
	isHTML := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; whatever was counted so far stands
			return len(seen), isHTML
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "html", "body", "table":
				isHTML = true
			case "a":
				for _, a := range tok.Attr {
					if a.Key != "href" {
						continue
					}
					href := strings.ToLower(strings.TrimSpace(a.Val))
					if strings.HasSuffix(href, ModArchiveSuffix) {
						seen[href] = struct{}{}
						isHTML = true
					}
				}
			}
		}
	}
}
