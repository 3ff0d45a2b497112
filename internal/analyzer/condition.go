package analyzer

import (
	"regexp"
	"strings"
)

// Recognizers for conditionToEnglish, tried in order. Each is anchored so
// that compound conditions fall through to the compound/fallback handling.
var (
	reStrictNeq     = regexp.MustCompile(`^(.+?)\s*!==?\s*(.+)$`)
	reStrictEq      = regexp.MustCompile(`^(.+?)\s*===?\s*(.+)$`)
	reOptionalChain = regexp.MustCompile(`^!?(\w+)\?\.(\w+)$`)
	reNegatedProp   = regexp.MustCompile(`^!(\w+)\.(\w+)$`)
	rePositiveProp  = regexp.MustCompile(`^(\w+)\.(\w+)$`)
	reConfirmCall   = regexp.MustCompile(`^(!?)\s*(?:window\.)?confirm\(\s*['"` + "`" + `](.*?)['"` + "`" + `]\s*\)$`)
	reBareNegation  = regexp.MustCompile(`^!\s*(\w+)$`)
	reBareIdent     = regexp.MustCompile(`^(\w+)$`)
	reTrimEmpty     = regexp.MustCompile(`^!?(\w+(?:\.\w+)*)\.trim\(\)\s*(===?|!==?)\s*['"` + "`" + `]['"` + "`" + `]$`)
	reLengthCheck   = regexp.MustCompile(`^(\w+(?:\.\w+)*)\.length\s*(===?\s*0|!==?\s*0|>\s*0|<=?\s*0)$`)
	reIsPrefix      = regexp.MustCompile(`^is[A-Z]`)
	reCamelSplit    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// negatedIdentPhrases maps identifier substrings to phrasings for "!ident".
// Checked against the lowercased, camelCase-split identifier.
var negatedIdentPhrases = []struct{ key, phrase string }{
	{"token", "Is the token missing?"},
	{"loading", "Is loading finished?"},
	{"user", "Is the user logged out?"},
	{"data", "Is data missing?"},
	{"error", "Is there no error?"},
	{"valid", "Is the input invalid?"},
	{"auth", "Is the user not authenticated?"},
}

// positiveIdentPhrases is the mirrored table for a bare "ident".
var positiveIdentPhrases = []struct{ key, phrase string }{
	{"token", "Is a token present?"},
	{"loading", "Is it still loading?"},
	{"user", "Is the user logged in?"},
	{"data", "Is data available?"},
	{"error", "Did an error occur?"},
	{"valid", "Is the input valid?"},
	{"auth", "Is the user authenticated?"},
}

// conditionToEnglish converts a raw boolean expression into a plain-English
// yes/no question. It is total: any string in, a capitalized question ending
// in "?" out. Recognizers are applied in priority order, first match wins,
// with a textual cleanup fallback for everything else.
func conditionToEnglish(raw string) string {
	cond := strings.TrimSpace(raw)
	if cond == "" {
		return "Is the condition met?"
	}

	// Compound conditions are reduced to their first operand before any
	// single-expression recognizer can misread them.
	if s, ok := translateCompound(cond); ok {
		return s
	}
	if s, ok := translateSimple(cond); ok {
		return s
	}
	return fallbackQuestion(cond)
}

func translateSimple(cond string) (string, bool) {
	// Literal comparisons (null/undefined/true/false, trim, length) are
	// recognized before the generic equality phrasings.
	if s, ok := translateLiteralComparison(cond); ok {
		return s, true
	}

	if m := reStrictNeq.FindStringSubmatch(cond); m != nil && !strings.Contains(m[1], "=") {
		left, right := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if containsFold(left, "password") && containsFold(right, "password") {
			return "Do passwords match?", true
		}
		return "Does " + humanize(left) + " equal " + humanize(right) + "?", true
	}

	if m := reStrictEq.FindStringSubmatch(cond); m != nil && !strings.ContainsAny(m[1], "=<>!") {
		left, right := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		return "Is " + humanize(left) + " " + strings.Trim(right, "'\"`") + "?", true
	}

	if m := reOptionalChain.FindStringSubmatch(cond); m != nil {
		obj, prop := m[1], m[2]
		switch {
		case prop == "id":
			return "Does " + humanize(obj) + " have an ID?", true
		case prop == "ok":
			return "Did " + humanize(obj) + " succeed?", true
		case containsFold(prop, "email"):
			return "Does " + humanize(obj) + " have an email?", true
		case containsFold(prop, "name"):
			return "Does " + humanize(obj) + " have a name?", true
		}
		return "Does " + humanize(obj) + " have " + humanize(prop) + "?", true
	}

	if m := reNegatedProp.FindStringSubmatch(cond); m != nil {
		obj, prop := m[1], m[2]
		switch {
		case prop == "ok":
			return "Did the request fail?", true
		case containsFold(prop, "valid"):
			return "Is " + humanize(obj) + " invalid?", true
		case containsFold(prop, "success"):
			return "Did " + humanize(obj) + " fail?", true
		case prop == "length":
			return "Is " + humanize(obj) + " empty?", true
		}
		return "Is " + humanize(obj) + "." + prop + " false?", true
	}

	if m := rePositiveProp.FindStringSubmatch(cond); m != nil {
		obj, prop := m[1], m[2]
		switch {
		case prop == "ok":
			return "Did the request succeed?", true
		case containsFold(prop, "success"):
			return "Did " + humanize(obj) + " succeed?", true
		case reIsPrefix.MatchString(prop):
			return "Is " + humanize(obj) + " " + humanize(prop[2:]) + "?", true
		}
		return "Is " + humanize(obj) + " " + humanize(prop) + "?", true
	}

	if m := reConfirmCall.FindStringSubmatch(cond); m != nil {
		msg := truncate(m[2], 40)
		if m[1] == "!" {
			return `User declined: "` + msg + `"?`, true
		}
		return `User confirmed: "` + msg + `"?`, true
	}

	if m := reBareNegation.FindStringSubmatch(cond); m != nil {
		name := m[1]
		if phrase, ok := lookupIdentPhrase(name, negatedIdentPhrases); ok {
			return phrase, true
		}
		return "Is " + humanize(name) + " missing?", true
	}

	if m := reBareIdent.FindStringSubmatch(cond); m != nil {
		name := m[1]
		if phrase, ok := lookupIdentPhrase(name, positiveIdentPhrases); ok {
			return phrase, true
		}
		return "Is " + humanize(name) + " true?", true
	}

	return "", false
}

// translateLiteralComparison handles .trim() emptiness checks, comparisons
// against null/undefined/true/false literals, and .length checks.
func translateLiteralComparison(cond string) (string, bool) {
	if m := reTrimEmpty.FindStringSubmatch(cond); m != nil {
		subject := humanize(m[1])
		if strings.HasPrefix(m[2], "!") {
			return "Is " + subject + " filled in?", true
		}
		return "Is " + subject + " empty?", true
	}

	if m := reLengthCheck.FindStringSubmatch(cond); m != nil {
		subject := humanize(m[1])
		op := strings.ReplaceAll(m[2], " ", "")
		if strings.HasPrefix(op, ">") || strings.HasPrefix(op, "!") {
			return "Does " + subject + " have items?", true
		}
		return "Is " + subject + " empty?", true
	}

	for _, m := range [][]string{
		reStrictNeq.FindStringSubmatch(cond),
		reStrictEq.FindStringSubmatch(cond),
	} {
		if m == nil {
			continue
		}
		left := strings.TrimSpace(m[1])
		right := strings.TrimSpace(m[2])
		if strings.ContainsAny(left, "=<>!") || strings.ContainsAny(right, "=<>") {
			continue
		}
		negated := strings.Contains(cond[len(m[1]):], "!")
		subject := humanize(left)
		switch right {
		case "null", "undefined":
			if negated {
				return "Does " + subject + " exist?", true
			}
			return "Is " + subject + " missing?", true
		case "true":
			if negated {
				return "Is " + subject + " false?", true
			}
			return "Is " + subject + " true?", true
		case "false":
			if negated {
				return "Is " + subject + " true?", true
			}
			return "Is " + subject + " false?", true
		case `''`, `""`, "``":
			if negated {
				return "Is " + subject + " filled in?", true
			}
			return "Is " + subject + " empty?", true
		case "0":
			if strings.HasSuffix(left, ".length") {
				trimmed := humanize(strings.TrimSuffix(left, ".length"))
				if negated {
					return "Does " + trimmed + " have items?", true
				}
				return "Is " + trimmed + " empty?", true
			}
		}
	}

	return "", false
}

// translateCompound truncates a long &&/|| chain to its first operand,
// translates that recursively and marks the remainder.
func translateCompound(cond string) (string, bool) {
	idx := -1
	for _, op := range []string{"&&", "||"} {
		if i := strings.Index(cond, op); i > 0 && (idx == -1 || i < idx) {
			idx = i
		}
	}
	if idx == -1 {
		return "", false
	}
	first := strings.TrimSpace(cond[:idx])
	first = strings.TrimPrefix(first, "(")
	translated := conditionToEnglish(first)
	return strings.TrimSuffix(translated, "?") + " (+more)?", true
}

// fallbackQuestion performs the last-resort textual cleanup.
func fallbackQuestion(cond string) string {
	s := cond
	s = strings.ReplaceAll(s, "!", "not ")
	s = strings.ReplaceAll(s, "&&", " and ")
	s = strings.ReplaceAll(s, "||", " or ")
	s = strings.ReplaceAll(s, ".", " ")
	s = reCamelSplit.ReplaceAllString(s, "$1 $2")
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	s = truncate(s, 30)
	return capitalize(s) + "?"
}

func lookupIdentPhrase(name string, table []struct{ key, phrase string }) (string, bool) {
	split := strings.ToLower(reCamelSplit.ReplaceAllString(name, "$1 $2"))
	for _, entry := range table {
		if strings.Contains(split, entry.key) {
			return entry.phrase, true
		}
	}
	return "", false
}

// humanize splits camelCase, strips leading accessors and lowercases the
// result so it reads naturally inside a sentence.
func humanize(expr string) string {
	s := strings.TrimSpace(expr)
	s = strings.TrimPrefix(s, "this.")
	s = strings.Trim(s, "()")
	s = reCamelSplit.ReplaceAllString(s, "$1 $2")
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "it"
	}
	return s
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return "Is this true"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
