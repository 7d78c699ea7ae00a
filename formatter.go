package bookshelf

import (
	"strconv"
	"strings"
)

// FormatBooks formats books for terminal display.
// Empty metadata is skipped; books are separated by blank lines.
func FormatBooks(books []*Book) string {
	if len(books) == 0 {
		return ""
	}

	parts := make([]string, 0, len(books))
	for _, b := range books {
		var sb strings.Builder
		sb.WriteString("## " + b.Title)

		if line := joinNonEmpty(" · ", authorOrUnknown(b.Author), year(b), b.Publisher); line != "" {
			sb.WriteString("\n" + line)
		}
		isbn := ""
		if b.ISBN != "" {
			isbn = "ISBN " + b.ISBN
		}
		if line := joinNonEmpty(" · ", isbn, b.Genre, b.Series, b.Source); line != "" {
			sb.WriteString("\n" + line)
		}
		if b.Description != "" {
			sb.WriteString("\n" + b.Description)
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "\n\n")
}

func authorOrUnknown(author string) string {
	if author == "" {
		return "Unknown author"
	}
	return author
}

func year(b *Book) string {
	if b.Published == nil {
		return ""
	}
	return strconv.Itoa(b.Published.Year())
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
