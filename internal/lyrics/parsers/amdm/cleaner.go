package amdm

import (
	"fmt"
	"regexp"
	"strings"
)

var unwantedSectionLine = regexp.MustCompile(`[ \t]*\[(Вступление|Проигрыш|Кода)\][^\n]*`)

// finalCleanup replaces leftover unwanted sections with a paragraph break
// and caps runs of blank lines at MaxLineBreaks.
func (p *Parser) finalCleanup(lyrics string) string {
	lyrics = unwantedSectionLine.ReplaceAllString(lyrics, "\n\n")

	for _, section := range p.config.UnwantedSections {
		lyrics = strings.ReplaceAll(lyrics, section.Marker(), "\n\n")
	}

	if p.config.MaxLineBreaks > 0 {
		excessive := regexp.MustCompile(fmt.Sprintf(`\n{%d,}`, p.config.MaxLineBreaks+1))
		lyrics = excessive.ReplaceAllString(lyrics, strings.Repeat("\n", p.config.MaxLineBreaks))
	}

	return strings.TrimSpace(lyrics)
}
