package analyzer

// findBlockEnd scans forward from the 0-indexed start line, counting '{'
// and '}' characters, and returns the 1-indexed line on which the block
// closes. Counting is purely textual: braces inside string literals or
// comments are counted too. If the braces never balance the end of input
// is treated as the block end and len(lines) is returned.
func findBlockEnd(lines []string, start int) int {
	return findSpanEnd(lines, start, '{', '}')
}

// findParenEnd is findBlockEnd for parentheses.
func findParenEnd(lines []string, start int) int {
	return findSpanEnd(lines, start, '(', ')')
}

func findSpanEnd(lines []string, start int, open, close rune) int {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case open:
				depth++
				opened = true
			case close:
				depth--
			}
		}
		if opened && depth <= 0 {
			return i + 1
		}
	}
	return len(lines)
}
