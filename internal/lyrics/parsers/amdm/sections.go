package amdm

import (
	"regexp"
	"strings"
)

var (
	chordSeparatorRegex  = regexp.MustCompile(`^[\s\|]*$`)
	commentArtifactRegex = regexp.MustCompile(`/\*[^*]*\*?`)
	sectionNameRegex     = regexp.MustCompile(`\[([^\]]+):\]`)
)

// processTextLines processes text line by line
func (p *Parser) processTextLines(cleanText string) string {
	var processedLines []string

	for _, line := range strings.Split(cleanText, "\n") {
		trimmedLine := strings.TrimSpace(line)

		if trimmedLine == "" {
			continue
		}

		if strings.HasPrefix(trimmedLine, "[") {
			processedLines = p.handleSectionMarker(trimmedLine, processedLines)
			continue
		}

		if chordSeparatorRegex.MatchString(trimmedLine) {
			continue
		}

		cleanLine := commentArtifactRegex.ReplaceAllString(trimmedLine, "")
		cleanLine = strings.ReplaceAll(cleanLine, "*", "")
		cleanLine = strings.ReplaceAll(cleanLine, "/", "")
		cleanLine = strings.TrimSpace(cleanLine)

		if cleanLine != "" {
			processedLines = append(processedLines, cleanLine)
		}
	}

	return p.finalCleanup(strings.Join(processedLines, "\n"))
}

// handleSectionMarker keeps allowed section headers preceded by a blank
// line and turns unwanted ones into a paragraph break.
func (p *Parser) handleSectionMarker(trimmedLine string, processedLines []string) []string {
	if p.isSection(trimmedLine, p.config.AllowedSections) {
		sectionName := trimmedLine
		if match := sectionNameRegex.FindStringSubmatch(trimmedLine); len(match) > 1 {
			sectionName = "[" + match[1] + "]:"
		}
		return append(processedLines, "", sectionName)
	}

	if p.isSection(trimmedLine, p.config.UnwantedSections) {
		return append(processedLines, "", "")
	}

	return processedLines
}

func (p *Parser) isSection(line string, sections []SectionType) bool {
	for _, section := range sections {
		if strings.Contains(line, section.Marker()) {
			return true
		}
	}
	return false
}

// playableLines drops blank lines and section headers, leaving only the
// lines a singer would read.
func (p *Parser) playableLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isSectionHeader(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isSectionHeader(line string) bool {
	return strings.HasPrefix(line, "[") && (strings.HasSuffix(line, "]:") || strings.HasSuffix(line, "]"))
}
