package jsontree

import (
	"strconv"
	"strings"
)

// EscapeToken escapes a reference token per RFC 6901: "~" becomes "~0" and
// "/" becomes "~1".
func EscapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// AppendToken extends a JSON Pointer with an object field token.
// The root pointer is the empty string.
func AppendToken(pointer, token string) string {
	return pointer + "/" + EscapeToken(token)
}

// AppendIndex extends a JSON Pointer with an array index token.
func AppendIndex(pointer string, index int) string {
	return pointer + "/" + strconv.Itoa(index)
}
