package amdm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	chordRegex          = regexp.MustCompile(`<div[^>]*class="podbor__chord"[^>]*>.*?</div>`)
	authorCommentRegex  = regexp.MustCompile(`<span[^>]*class="podbor__author-comment"[^>]*>.*?</span>`)
	closedCommentRegex  = regexp.MustCompile(`/\*[^*]*\*/`)
	trailingCommentRe   = regexp.MustCompile(`/\*.*$`)
	unwantedKeywordRe   = regexp.MustCompile(`<div[^>]*class="podbor__keyword"[^>]*>\s*\[(Вступление|Проигрыш|Кода)\][^<]*</div>`)
	unwantedSectionText = regexp.MustCompile(`\s*\[(Вступление|Проигрыш|Кода)\][^<\n]*`)
)

// processHTMLContent turns the chords block markup into plain lyrics text.
func (p *Parser) processHTMLContent(originalHTML string) (string, error) {
	// chords become paragraph breaks, author comments disappear
	processed := chordRegex.ReplaceAllString(originalHTML, "\n\n")
	processed = authorCommentRegex.ReplaceAllString(processed, "")
	processed = closedCommentRegex.ReplaceAllString(processed, "")
	processed = trailingCommentRe.ReplaceAllString(processed, "")
	processed = unwantedKeywordRe.ReplaceAllString(processed, "\n\n")
	processed = unwantedSectionText.ReplaceAllString(processed, "\n\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(processed))
	if err != nil {
		return "", fmt.Errorf("failed to parse lyrics block: %w", err)
	}

	return p.processTextLines(doc.Text()), nil
}
