package dashboard

import (
	"strings"

	"golang.org/x/text/language"
)

// PrimaryLanguage returns the highest weighted tag of an Accept-Language header in
// lower case, or "" when the header is empty or malformed.
func PrimaryLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return strings.ToLower(tags[0].String())
}
