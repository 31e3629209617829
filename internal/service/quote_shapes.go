package service

import "github.com/TanujMamidala/InfoHub-Challenge/internal/models"

// QuoteShapeMatcher maps a decoded upstream payload to a quote, reporting
// false when the payload is not in its shape.
type QuoteShapeMatcher func(payload interface{}) (models.Quote, bool)

// quoteShapeMatchers are tried in order; the first match wins.
var quoteShapeMatchers = []QuoteShapeMatcher{
	matchContentAuthor,
	matchQuoteAuthor,
	matchResultsArray,
}

// MatchQuote runs the ordered matchers against payload.
func MatchQuote(payload interface{}) (models.Quote, bool) {
	for _, matcher := range quoteShapeMatchers {
		if quote, ok := matcher(payload); ok {
			return quote, true
		}
	}
	return models.Quote{}, false
}

// {"content": "...", "author": "..."} as served by quotable.io.
func matchContentAuthor(payload interface{}) (models.Quote, bool) {
	object, ok := payload.(map[string]interface{})
	if !ok {
		return models.Quote{}, false
	}
	text, hasText := stringField(object, "content")
	author, hasAuthor := stringField(object, "author")
	if !hasText || !hasAuthor {
		return models.Quote{}, false
	}
	return models.Quote{Text: text, Author: author}, true
}

// {"quote": "...", "author": "..."}
func matchQuoteAuthor(payload interface{}) (models.Quote, bool) {
	object, ok := payload.(map[string]interface{})
	if !ok {
		return models.Quote{}, false
	}
	text, hasText := stringField(object, "quote")
	author, hasAuthor := stringField(object, "author")
	if !hasText || !hasAuthor {
		return models.Quote{}, false
	}
	return models.Quote{Text: text, Author: author}, true
}

// {"results": [{...}, ...]}; only the first item is used. The author may be
// empty and is filled in at display time.
func matchResultsArray(payload interface{}) (models.Quote, bool) {
	object, ok := payload.(map[string]interface{})
	if !ok {
		return models.Quote{}, false
	}
	results, ok := object["results"].([]interface{})
	if !ok || len(results) == 0 {
		return models.Quote{}, false
	}
	item, ok := results[0].(map[string]interface{})
	if !ok {
		return models.Quote{}, false
	}
	text := firstStringField(item, "content", "quote", "text")
	if text == "" {
		return models.Quote{}, false
	}
	return models.Quote{Text: text, Author: firstStringField(item, "author", "authorName")}, true
}

func stringField(object map[string]interface{}, key string) (string, bool) {
	value, ok := object[key].(string)
	return value, ok && value != ""
}

func firstStringField(object map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := stringField(object, key); ok {
			return value
		}
	}
	return ""
}
