package assistant

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Completion services are not required to obey formatting instructions, so
// candidate recovery runs as an ordered cascade of decreasingly strict
// strategies. Each strategy is a pure function so new ones can be inserted
// without touching the others.
var extractStrategies = []func(string) (map[string]any, bool){
	parseDirect,
	parseFencedBlock,
	parseOuterBraces,
	parseBalancedScan,
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractCandidate tries each strategy in order and returns the first JSON
// object recovered from the raw completion text. ok is false when no strategy
// produced one; the caller then falls back to treating the raw text as the
// reply itself.
func ExtractCandidate(raw string) (map[string]any, bool) {
	for _, strategy := range extractStrategies {
		if obj, ok := strategy(raw); ok {
			return obj, true
		}
	}
	return nil, false
}

// parseDirect succeeds only when the model honored the contract verbatim.
func parseDirect(raw string) (map[string]any, bool) {
	return parseObject(strings.TrimSpace(raw))
}

// parseFencedBlock handles the common case of the model wrapping its JSON in
// a markdown code fence despite instructions not to.
func parseFencedBlock(raw string) (map[string]any, bool) {
	m := fencedBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	return parseObject(strings.TrimSpace(m[1]))
}

// parseOuterBraces slices from the first { to the last }, which strips
// leading/trailing prose around a single JSON object.
func parseOuterBraces(raw string) (map[string]any, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return parseObject(raw[start : end+1])
}

// parseBalancedScan walks the text tracking brace depth, skipping braces that
// appear inside quoted strings (and backslash escapes within them) so string
// values containing { or } never desynchronize the counter. Every span that
// closes back to depth zero is parsed; the first one that is a valid object
// containing a "reply" key wins.
func parseBalancedScan(raw string) (map[string]any, bool) {
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				if obj, ok := parseObject(raw[start : i+1]); ok {
					if _, has := obj["reply"]; has {
						return obj, true
					}
				}
				start = -1
			}
		}
	}
	return nil, false
}

func parseObject(s string) (map[string]any, bool) {
	if s == "" || !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
