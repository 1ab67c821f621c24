package messages

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

var boldWords = regexp.MustCompile(`\b(` + strings.Join([]string{
	"added",
	"attached",
	"booted",
	"cancelled",
	"completed",
	"created",
	"deleted",
	"detached",
	"disabled",
	"enabled",
	"failed",
	"imported",
	"migrated",
	"rebooted",
	"rebuilt",
	"removed",
	"reset",
	"resized",
	"restored",
	"revoked",
	"shut down",
	"updated",
	"upgraded",
}, "|") + `)\b`)

// SafeSecondaryEntityLabel returns "<text> <label>" for an event with a
// labelled secondary entity, and fallback otherwise.
func SafeSecondaryEntityLabel(e models.Event, text, fallback string) string {
	if e.SecondaryEntity == nil || e.SecondaryEntity.Label == "" {
		return fallback
	}
	return text + " " + e.SecondaryEntity.Label
}

// AppendUsername credits the acting user unless msg already names them.
func AppendUsername(msg, username string) string {
	if msg == "" || username == "" || strings.Contains(msg, username) {
		return msg
	}
	if trimmed, ok := strings.CutSuffix(msg, "."); ok {
		return fmt.Sprintf("%s by %s.", trimmed, username)
	}
	return fmt.Sprintf("%s by %s", msg, username)
}

// ApplyLinking wraps entity labels in links to their console pages.
//
// The primary label is replaced everywhere except between backticks, which
// mark verbatim text such as domain names. The secondary label is replaced
// once. A label is left alone when resolve has no target for it.
func ApplyLinking(msg string, e models.Event, resolve LinkResolver) string {
	if msg == "" {
		return ""
	}

	primary := ""
	if e.Entity != nil && e.Entity.Label != "" {
		primary = e.Entity.Label
		if target := resolve(e.Action, *e.Entity); target != "" {
			msg = linkOutsideBackticks(msg, primary, anchor(target, primary))
		}
	}

	if e.SecondaryEntity != nil && e.SecondaryEntity.Label != "" && e.SecondaryEntity.Label != primary {
		label := e.SecondaryEntity.Label
		if target := resolve(e.Action, *e.SecondaryEntity); target != "" {
			msg = strings.Replace(msg, label, anchor(target, label), 1)
		}
	}
	return msg
}

// ApplyBolding emphasises the status words in msg.
func ApplyBolding(msg string) string {
	if msg == "" {
		return ""
	}
	return boldWords.ReplaceAllString(msg, "<strong>$1</strong>")
}

func anchor(href, label string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, label)
}

// linkOutsideBackticks replaces label with link in the even-numbered
// segments of msg split on backticks, i.e. outside any quoted span.
func linkOutsideBackticks(msg, label, link string) string {
	re, err := regexp.Compile(regexp.QuoteMeta(label))
	if err != nil {
		return msg
	}
	parts := strings.Split(msg, "`")
	for i := 0; i < len(parts); i += 2 {
		parts[i] = re.ReplaceAllLiteralString(parts[i], link)
	}
	return strings.Join(parts, "`")
}
