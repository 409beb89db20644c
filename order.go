package ghaudit

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// loginOrder returns a comparator that orders logins alphabetically, case
// folded first, with byte order as the final tie-break.
// A Collator is not safe for concurrent use, so each sort takes its own.
func loginOrder() func(a, b string) int {
	c := collate.New(language.Und)
	return func(a, b string) int {
		return cmp.Or(c.CompareString(a, b), cmp.Compare(a, b))
	}
}
