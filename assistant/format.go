// ABOUTME: Response type and rendering helpers for assistant answers
// ABOUTME: List answers preview a fixed number of items followed by "+N more"
package assistant

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PreviewLimit is how many items a list answer shows before "+N more".
const PreviewLimit = 3

// Item is one line of a list answer.
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Response is the answer to one chat message.
type Response struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Items    []Item `json:"items,omitempty"`
	More     int    `json:"more,omitempty"`
}

// String renders the response as the plain text shown in the chat.
func (r Response) String() string {
	var b strings.Builder
	b.WriteString(r.Text)
	for _, it := range r.Items {
		b.WriteString("\n• ")
		b.WriteString(it.Title)
		if it.Detail != "" {
			b.WriteString(": ")
			b.WriteString(it.Detail)
		}
	}
	if r.More > 0 {
		fmt.Fprintf(&b, "\n+%d more", r.More)
	}
	return b.String()
}

// listResponse truncates items to the preview and records the remainder.
func listResponse(category, text string, items []Item) Response {
	r := Response{Category: category, Text: text}
	if len(items) > PreviewLimit {
		r.Items = items[:PreviewLimit]
		r.More = len(items) - PreviewLimit
	} else {
		r.Items = items
	}
	return r
}

func textResponse(category, text string) Response {
	return Response{Category: category, Text: text}
}

var printer = message.NewPrinter(language.English)

// Money formats an amount as whole dollars with thousands separators.
func Money(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// ShortDate formats a date like "Mar 7, 2025".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
