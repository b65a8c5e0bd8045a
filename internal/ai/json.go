package ai

import (
	"encoding/json"
	"strings"
	"unicode"

	"fitai/plan-service/internal/apperr"
)

// StripCodeFence removes a surrounding ``` or ```json fence from a model reply
// and cuts the outermost JSON object or array out of any surrounding prose.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		// The first line is an info string ("json") only when it is bare letters;
		// otherwise the document starts on the fence line.
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && isInfoString(s[:nl]) {
			s = s[nl+1:]
		}
		s = strings.TrimSpace(s)
	}
	return extractJSON(s)
}

func isInfoString(line string) bool {
	for _, r := range strings.TrimSpace(line) {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func extractJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s
	}
	return s[start : end+1]
}

// DecodeJSON strips any fence from raw and decodes it into v. A failure is a
// MALFORMED_UPSTREAM_RESPONSE; callers log Excerpt(raw) for diagnostics.
func DecodeJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), v); err != nil {
		return apperr.ErrMalformedUpstream.WithCause(err)
	}
	return nil
}

// Excerpt trims a raw model reply to the size kept in logs.
func Excerpt(raw string) string {
	return truncate(raw, rawLogLimit)
}
