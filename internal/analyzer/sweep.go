package analyzer

import "strings"

// sweep scans every line once, trying catalog patterns in priority order.
// The first pattern whose predicate fires on a line owns it; lower-priority
// patterns never see a line a higher one already classified. Blank lines
// and comment-only lines are skipped. The returned matches are in line
// order, before overlap deduplication.
func sweep(lines []string) []*PatternMatch {
	var matches []*PatternMatch
	for i, line := range lines {
		if skippableLine(line) {
			continue
		}
		for _, p := range catalog {
			if !p.match(line, i, lines) {
				continue
			}
			if m := p.extract(line, i, lines); m != nil {
				matches = append(matches, m)
				break
			}
		}
	}
	return matches
}

// dedupe drops any match whose starting line falls inside a range already
// claimed by an earlier match. Multi-line detectors consume lines that
// single-line detectors matched independently; discovery order (equals line
// order, equals priority at the claiming line) decides the winner.
func dedupe(matches []*PatternMatch) []*PatternMatch {
	kept := make([]*PatternMatch, 0, len(matches))
	for _, m := range matches {
		claimed := false
		for _, k := range kept {
			if m.LineStart >= k.LineStart && m.LineStart <= k.LineEnd {
				claimed = true
				break
			}
		}
		if !claimed {
			kept = append(kept, m)
		}
	}
	return kept
}

// skippableLine reports whether a line is blank or comment-only.
func skippableLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return true
	}
	for _, prefix := range []string{"//", "/*", "*", "#", "<!--"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
