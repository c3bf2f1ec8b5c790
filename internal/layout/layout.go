// Package layout wraps text into lines that fit the printable width of
// the device, measured in dots against a font face.
package layout

import (
	"strings"

	"golang.org/x/image/font"
)

// Line is a single wrapped row ready to render. An empty Text marks a
// blank line kept for vertical spacing.
type Line struct {
	Text  string
	Width int
}

// When a single word is wider than the available width on its own, it
// is force-split into fixed-length rune chunks rather than measured
// ones.
const forceSplitRunes = 20

// Wrap splits text into lines no wider than maxWidth dots. Paragraph
// breaks are honoured first; within a paragraph words are packed
// greedily, earliest fit wins. Empty or whitespace-only paragraphs
// produce a single empty Line each.
func Wrap(text string, face font.Face, maxWidth int) []Line {
	var lines []Line
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, face, maxWidth)...)
	}
	return lines
}

func wrapParagraph(paragraph string, face font.Face, maxWidth int) []Line {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []Line{{}}
	}

	var lines []Line
	var line string
	for _, word := range words {
		testLine := line
		if len(line) > 0 {
			testLine += " "
		}
		testLine += word

		width := font.MeasureString(face, testLine).Ceil()
		if width <= maxWidth {
			line = testLine
			continue
		}

		if len(line) > 0 {
			lines = append(lines, measure(line, face))
			line = word
			if font.MeasureString(face, word).Ceil() <= maxWidth {
				continue
			}
		} else {
			line = word
		}

		// The word alone is too wide: emit fixed-size chunks and
		// carry the last one forward as the new accumulator.
		chunks := splitWord(line)
		for _, chunk := range chunks[:len(chunks)-1] {
			lines = append(lines, measure(chunk, face))
		}
		line = chunks[len(chunks)-1]
	}

	if len(line) > 0 {
		lines = append(lines, measure(line, face))
	}
	return lines
}

func measure(text string, face font.Face) Line {
	return Line{Text: text, Width: font.MeasureString(face, text).Ceil()}
}

func splitWord(word string) []string {
	runes := []rune(word)
	var chunks []string
	for len(runes) > forceSplitRunes {
		chunks = append(chunks, string(runes[:forceSplitRunes]))
		runes = runes[forceSplitRunes:]
	}
	return append(chunks, string(runes))
}
