package render

import "strings"

// wrapText greedily breaks text into lines no wider than width as reported
// by measure. Explicit newlines start a new paragraph; a blank paragraph
// yields an empty line. A single word wider than width is split by rune.
func wrapText(text string, width float64, measure func(string) float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n ")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			if measure(word) <= width {
				current = word
				continue
			}
			chunks := splitWord(word, width, measure)
			lines = append(lines, chunks[:len(chunks)-1]...)
			current = chunks[len(chunks)-1]
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

func splitWord(word string, width float64, measure func(string) float64) []string {
	var chunks []string
	var b strings.Builder
	for _, r := range word {
		if b.Len() > 0 && measure(b.String()+string(r)) > width {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
