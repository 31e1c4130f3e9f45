package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/usecase/briefing"
	"daily-briefing/internal/utils/text"
)

// maxSnippetRunes bounds the description kept per item.
const maxSnippetRunes = 500

var (
	itemRe      = regexp.MustCompile(`(?is)<item(?:\s[^>]*)?>(.*?)</item\s*>`)
	cdataRe     = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	enclosureRe = regexp.MustCompile(`(?is)<enclosure\b[^>]*>`)
	enclURLRe   = regexp.MustCompile(`(?is)(?:^|[\s<])url\s*=\s*["']([^"']*)["']`)
	enclTypeRe  = regexp.MustCompile(`(?is)(?:^|[\s<])type\s*=\s*["']([^"']*)["']`)

	tagRes = map[string]*regexp.Regexp{
		"title":       tagPattern("title"),
		"link":        tagPattern("link"),
		"description": tagPattern("description"),
		"pubDate":     tagPattern("pubDate"),
	}
)

func tagPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + tag + `(?:\s[^>]*)?>(.*?)</` + tag + `\s*>`)
}

// Parser adapts ParseItems to briefing.FeedParser.
type Parser struct{}

// Parse implements briefing.FeedParser.
func (Parser) Parse(raw string) []briefing.FeedItem {
	return ParseItems(raw)
}

// ParseItems extracts items from raw feed text without ever failing.
//
// RSS <item> blocks are scanned with tolerant patterns so that feeds which are
// not well-formed XML still yield their items. Input without any <item> block is
// handed to gofeed, which covers Atom and RDF. Anything unparseable yields nil.
func ParseItems(raw string) []briefing.FeedItem {
	blocks := itemRe.FindAllStringSubmatch(raw, -1)
	if len(blocks) == 0 {
		return parseWithGofeed(raw)
	}

	items := make([]briefing.FeedItem, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, parseItemBlock(b[1]))
	}
	return items
}

func parseItemBlock(block string) briefing.FeedItem {
	title, _ := extractTag(block, "title")
	link, _ := extractTag(block, "link")
	desc, _ := extractTag(block, "description")
	pubDate, _ := extractTag(block, "pubDate")

	return briefing.FeedItem{
		Title:       text.CollapseSpace(title),
		Link:        strings.TrimSpace(link),
		Description: Snippet(desc),
		PubDate:     strings.TrimSpace(pubDate),
		Enclosure:   extractEnclosure(block),
	}
}

// extractTag returns the decoded text of the first <tag> in block.
// ok is false when the tag is absent.
func extractTag(block, tag string) (value string, ok bool) {
	re, found := tagRes[tag]
	if !found {
		re = tagPattern(regexp.QuoteMeta(tag))
	}
	m := re.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(decodeText(strings.TrimSpace(m[1]))), true
}

// decodeText unwraps CDATA sections verbatim and unescapes entities everywhere else.
func decodeText(s string) string {
	locs := cdataRe.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return html.UnescapeString(s)
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(html.UnescapeString(s[prev:loc[0]]))
		b.WriteString(s[loc[2]:loc[3]])
		prev = loc[1]
	}
	b.WriteString(html.UnescapeString(s[prev:]))
	return b.String()
}

// extractEnclosure reads the first <enclosure>. Attributes must follow whitespace,
// so data-url and the like are not taken for url.
func extractEnclosure(block string) *entity.Enclosure {
	tag := enclosureRe.FindString(block)
	if tag == "" {
		return nil
	}
	u := enclURLRe.FindStringSubmatch(tag)
	if u == nil || strings.TrimSpace(u[1]) == "" {
		return nil
	}
	enc := &entity.Enclosure{URL: html.UnescapeString(strings.TrimSpace(u[1]))}
	if t := enclTypeRe.FindStringSubmatch(tag); t != nil {
		enc.Type = strings.TrimSpace(t[1])
	}
	return enc
}

// Snippet turns an HTML description into plain text of at most 500 runes.
func Snippet(description string) string {
	return text.Truncate(text.CollapseSpace(StripHTML(description)), maxSnippetRunes)
}

// StripHTML returns the text content of an HTML fragment.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return htmlTagRe.ReplaceAllString(fragment, "")
	}
	return doc.Text()
}

func parseWithGofeed(raw string) []briefing.FeedItem {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	feed, err := gofeed.NewParser().ParseString(raw)
	if err != nil || feed == nil {
		return nil
	}

	items := make([]briefing.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		desc := it.Description
		if desc == "" {
			desc = it.Content
		}
		pub := it.Published
		if pub == "" {
			pub = it.Updated
		}

		item := briefing.FeedItem{
			Title:       text.CollapseSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Description: Snippet(desc),
			PubDate:     strings.TrimSpace(pub),
		}
		for _, e := range it.Enclosures {
			if e != nil && e.URL != "" {
				item.Enclosure = &entity.Enclosure{URL: e.URL, Type: e.Type}
				break
			}
		}
		items = append(items, item)
	}
	return items
}
