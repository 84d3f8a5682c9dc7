package services

import (
	"regexp"
	"strings"
)

// stopWords are tokens excluded from keyword extraction. Tokens of
// three characters or fewer are filtered separately, so only longer
// function words need listing.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "also": {}, "been": {},
	"before": {}, "being": {}, "between": {}, "both": {}, "could": {},
	"does": {}, "doing": {}, "down": {}, "during": {}, "each": {},
	"every": {}, "from": {}, "further": {}, "have": {}, "having": {},
	"here": {}, "into": {}, "just": {}, "more": {}, "most": {},
	"must": {}, "only": {}, "other": {}, "over": {}, "same": {},
	"shall": {}, "should": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"under": {}, "until": {}, "very": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {},
}

var nonWordPattern = regexp.MustCompile(`[^a-z0-9\s]+`)

// extractKeywords tokenizes text into a keyword set: lower-cased,
// punctuation stripped, stop-words and tokens of three characters or
// fewer removed.
func extractKeywords(text string) map[string]struct{} {
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, " ")

	keywords := make(map[string]struct{})
	for _, token := range strings.Fields(text) {
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}

// sharedKeywordCount counts keywords present in both sets.
func sharedKeywordCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	var shared int
	for kw := range a {
		if _, ok := b[kw]; ok {
			shared++
		}
	}
	return shared
}
