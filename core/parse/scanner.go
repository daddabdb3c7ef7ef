package parse

import (
	"encoding/json"
	"iter"
	"strings"
)

// readString reads the JSON string literal whose opening quote is at
// src[start]. It returns the raw literal including both quotes and the index
// just past the closing quote. ok is false when the literal has not been
// terminated yet.
func readString(src string, start int) (literal string, end int, ok bool) {
	escaped := false
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			return src[start : i+1], i + 1, true
		}
	}
	return "", len(src), false
}

// unquote decodes a raw JSON string literal. Literals with invalid escapes
// fall back to stripping the quotes and unescaping embedded quotes only.
func unquote(literal string) string {
	var value string
	if err := json.Unmarshal([]byte(literal), &value); err == nil {
		return value
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(literal, `"`), `"`)
	return strings.ReplaceAll(inner, `\"`, `"`)
}

// skipSpace returns the index of the first non-whitespace byte at or after i.
func skipSpace(src string, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// matchClose finds the bracket that closes the '{' or '[' at src[start],
// ignoring brackets inside string literals. It returns the index of the
// closing bracket, or len(src) with closed == false when the container is still
// open at the end of the input.
func matchClose(src string, start int) (end int, closed bool) {
	depth := 0
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '"':
			_, next, ok := readString(src, i)
			if !ok {
				return len(src), false
			}
			i = next - 1
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return len(src), false
}

// objectKeys maps every key of the outermost object in src to the index where
// its value starts. Only the first occurrence of a key is kept, and keys of
// nested objects are ignored. The object does not need to be closed.
func objectKeys(src string) map[string]int {
	keys := make(map[string]int)
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"':
			literal, next, ok := readString(src, i)
			if !ok {
				return keys
			}
			if depth == 1 {
				colon := skipSpace(src, next)
				if colon < len(src) && src[colon] == ':' {
					key := unquote(literal)
					if _, seen := keys[key]; !seen {
						keys[key] = skipSpace(src, colon+1)
					}
				}
			}
			i = next - 1
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
	}
	return keys
}

// stringValue returns the string value of key in an object scanned by
// objectKeys. ok is false when the key is missing, its value is not a string,
// or the string has not been terminated yet.
func stringValue(src string, keys map[string]int, key string) (string, bool) {
	start, found := keys[key]
	if !found || start >= len(src) || src[start] != '"' {
		return "", false
	}
	literal, _, ok := readString(src, start)
	if !ok {
		return "", false
	}
	return unquote(literal), true
}

// arrayRegion returns the contents of the array value of key, excluding the
// brackets. An array still open at the end of src extends to the end of src.
// ok is false when the key is missing or its value is not an array.
func arrayRegion(src string, keys map[string]int, key string) (string, bool) {
	start, found := keys[key]
	if !found || start >= len(src) || src[start] != '[' {
		return "", false
	}
	end, _ := matchClose(src, start)
	return src[start+1 : end], true
}

// completeObjects returns every closed object that is a direct element of an
// array region. Scanning stops at the first object that is still open.
func completeObjects(region string) []string {
	var objects []string
	for i := 0; i < len(region); i++ {
		switch region[i] {
		case '"':
			_, next, ok := readString(region, i)
			if !ok {
				return objects
			}
			i = next - 1
		case '[':
			end, closed := matchClose(region, i)
			if !closed {
				return objects
			}
			i = end
		case '{':
			end, closed := matchClose(region, i)
			if !closed {
				return objects
			}
			objects = append(objects, region[i:end+1])
			i = end
		}
	}
	return objects
}

// stringLiterals returns every terminated string literal in region, unquoted,
// in order of appearance.
func stringLiterals(region string) []string {
	values := []string{}
	for i := 0; i < len(region); i++ {
		if region[i] != '"' {
			continue
		}
		literal, next, ok := readString(region, i)
		if !ok {
			break
		}
		values = append(values, unquote(literal))
		i = next - 1
	}
	return values
}

// JSONObjectCandidates trims prose and markdown fences around the JSON
// objects in text. It yields the object starting at each '{' in order, closed
// or, when still open, running to the end of text. Prose such as
// "a {note} first" puts a brace ahead of the real document, so callers move on
// to later candidates when an earlier one holds nothing useful.
func JSONObjectCandidates(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for offset := 0; offset < len(text); {
			start := strings.IndexByte(text[offset:], '{')
			if start == -1 {
				return
			}
			start += offset

			candidate := text[start:]
			if end, closed := matchClose(text, start); closed {
				candidate = text[start : end+1]
			}
			if !yield(candidate) {
				return
			}
			offset = start + 1
		}
	}
}
