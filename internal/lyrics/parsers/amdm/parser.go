package amdm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sukalov/lyricplayer/internal/logger"
)

const chordsBlockSelector = `pre[itemprop="chordsBlock"].field__podbor_new.podbor__text`

var ErrNoLyricsBlock = errors.New("could not find target element with chords and lyrics")

// Parser handles the HTML parsing and lyrics extraction
type Parser struct {
	client *Client
	config *ProcessingConfig
}

// NewParser creates a new AmDm parser
func NewParser() *Parser {
	return NewParserWithClient(NewClient())
}

func NewParserWithClient(client *Client) *Parser {
	return &Parser{
		client: client,
		config: DefaultConfig(),
	}
}

// ExtractLyricsFromAmdm extracts lyrics from an AmDm.ru page
func (p *Parser) ExtractLyricsFromAmdm(ctx context.Context, url string) (*LyricsResult, error) {
	logger.Debug(fmt.Sprintf("ExtractLyricsFromAmdm: Fetching page %s", url))

	html, err := p.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("ExtractLyricsFromAmdm: Successfully fetched page %s (HTML length: %d chars)", url, len(html)))

	result, err := p.ParseHTML(html)
	if err != nil {
		logger.Error(fmt.Sprintf("ExtractLyricsFromAmdm: %v\nURL: %s", err, url))
		return nil, err
	}
	result.URL = url

	logger.Success(fmt.Sprintf("ExtractLyricsFromAmdm: extracted %d lines from %s", len(result.Lines), url))
	return result, nil
}

// ParseHTML extracts lyrics from an already fetched page.
func (p *Parser) ParseHTML(html string) (*LyricsResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(chordsBlockSelector)
	if selection.Length() == 0 {
		return nil, ErrNoLyricsBlock
	}

	originalHTML, err := selection.First().Html()
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics block: %w", err)
	}

	text, err := p.processHTMLContent(originalHTML)
	if err != nil {
		return nil, err
	}

	return &LyricsResult{
		Title:     strings.TrimSpace(doc.Find("h1").First().Text()),
		Text:      text,
		Lines:     p.playableLines(text),
		FetchedAt: time.Now(),
	}, nil
}
