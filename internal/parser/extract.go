package parser

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Extraction rules are independent: each one either finds its value or reports
// absence, so a broken attribute never takes its neighbours down with it.

var (
	attrRules   sync.Map // attribute name -> *regexp.Regexp
	elementRule sync.Map // element name -> *regexp.Regexp
)

// attrPattern returns the compiled rule for one attribute name.
// Attribute order inside a tag is irrelevant; both quote styles are accepted.
func attrPattern(name string) *regexp.Regexp {
	if re, ok := attrRules.Load(name); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)(?:^|\s)` + regexp.QuoteMeta(name) + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	actual, _ := attrRules.LoadOrStore(name, re)
	return actual.(*regexp.Regexp)
}

// elementPattern returns the compiled rule for the text content of an element.
func elementPattern(name string) *regexp.Regexp {
	if re, ok := elementRule.Load(name); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(name) + `(?:\s[^>]*)?>\s*(.*?)\s*</` + regexp.QuoteMeta(name) + `\s*>`)
	actual, _ := elementRule.LoadOrStore(name, re)
	return actual.(*regexp.Regexp)
}

// attr extracts an attribute value from an opening tag.
func attr(tag, name string) (string, bool) {
	m := attrPattern(name).FindStringSubmatchIndex(tag)
	if m == nil {
		return "", false
	}
	// group 1 is the double-quoted form, group 2 the single-quoted one
	if m[2] >= 0 {
		return tag[m[2]:m[3]], true
	}
	return tag[m[4]:m[5]], true
}

// firstAttr returns the first attribute present among names.
func firstAttr(tag string, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := attr(tag, name); ok {
			return v, true
		}
	}
	return "", false
}

func attrFloat(tag, name string) (float64, bool) {
	v, ok := attr(tag, name)
	if !ok {
		return 0, false
	}
	return parseFloat(v)
}

func attrInt(tag, name string) (int, bool) {
	v, ok := attr(tag, name)
	if !ok {
		return 0, false
	}
	return parseInt(v)
}

func attrBool(tag, name string) (bool, bool) {
	v, ok := attr(tag, name)
	if !ok {
		return false, false
	}
	return parseBool(v)
}

// element extracts the trimmed text content of the first element with the given name.
func element(raw, name string) (string, bool) {
	m := elementPattern(name).FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func elementFloat(raw, name string) (float64, bool) {
	v, ok := element(raw, name)
	if !ok {
		return 0, false
	}
	return parseFloat(v)
}

func elementInt(raw, name string) (int, bool) {
	v, ok := element(raw, name)
	if !ok {
		return 0, false
	}
	return parseInt(v)
}

func elementBool(raw, name string) (bool, bool) {
	v, ok := element(raw, name)
	if !ok {
		return false, false
	}
	return parseBool(v)
}

func parseFloat(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseInt accepts integral floats ("3.000000") as the savegame writes them.
func parseInt(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if i, err := strconv.Atoi(v); err == nil {
		return i, true
	}
	f, ok := parseFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}
