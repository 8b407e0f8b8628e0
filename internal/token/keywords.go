package token

import "strings"

var keywords = map[string]Kind{
	"when":  When,
	"given": Given,
	"it":    It,
}

// LookupKeyword reports whether text (matched case-insensitively) is one
// of the tree grammar's structural keywords, and if so, its Kind.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(text)]
	return k, ok
}
