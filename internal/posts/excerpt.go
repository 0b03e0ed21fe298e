package posts

import "unicode/utf8"

const (
	// ExcerptLength is the number of characters of content kept in listings.
	ExcerptLength = 100
	// ExcerptSuffix marks truncated content.
	ExcerptSuffix = "..."
)

// Excerpt shortens content to ExcerptLength characters followed by
// ExcerptSuffix. Content that already fits is returned unchanged.
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= ExcerptLength {
		return content
	}

	return string([]rune(content)[:ExcerptLength]) + ExcerptSuffix
}
