package insight

import (
	"errors"
	"regexp"
	"strings"

	"code-darpan/internal/domain"
)

// MaxTips is the number of tips kept from a reply.
const MaxTips = 3

// ErrUnparsable is returned when a reply has no summary or no tips.
var ErrUnparsable = errors.New("reply does not match Summary/Tips format")

var (
	summaryMarker = regexp.MustCompile(`\**Summary\**:\**`)
	tipsMarker    = regexp.MustCompile(`\**Tips\**:\**`)
)

// ReplyParser turns generator output into an Insight.
type ReplyParser interface {
	Parse(reply string) (domain.Insight, error)
}

// TextParser reads the "Summary: ... Tips: - a - b - c" format.
//
// The summary is the text after the first "Summary:" label up to the first
// "Tips:" label. Each line after "Tips:" that starts with "-" is one tip.
// Labels are case-sensitive and may carry markdown bold markers, so a
// lowercase "tips:" inside prose is kept as text.
type TextParser struct{}

// Parse implements ReplyParser.
func (TextParser) Parse(reply string) (domain.Insight, error) {
	loc := summaryMarker.FindStringIndex(reply)
	if loc == nil {
		return domain.Insight{}, ErrUnparsable
	}
	rest := reply[loc[1]:]

	var summary, tipsBlock string
	if t := tipsMarker.FindStringIndex(rest); t != nil {
		summary, tipsBlock = rest[:t[0]], rest[t[1]:]
	} else {
		summary = rest
	}

	summary = strings.Trim(strings.TrimSpace(summary), "*")
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return domain.Insight{}, ErrUnparsable
	}

	tips := parseTips(tipsBlock)
	if len(tips) == 0 {
		return domain.Insight{}, ErrUnparsable
	}

	return domain.Insight{Summary: summary, Tips: tips}, nil
}

func parseTips(block string) []string {
	var tips []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		tip := strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if tip == "" {
			continue
		}
		tips = append(tips, tip)
		if len(tips) == MaxTips {
			break
		}
	}
	return tips
}
