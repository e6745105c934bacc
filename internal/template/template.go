package template

import (
	stdtemplate "html/template"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	blackfriday "gopkg.in/russross/blackfriday.v2"
)

// Template turns stored job text into what the job views show.
type Template struct {
	policy   *bluemonday.Policy
	renderer blackfriday.Renderer
}

func NewTemplate() *Template {
	return &Template{
		policy: bluemonday.UGCPolicy(),
		renderer: blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
			Flags: blackfriday.Safelink |
				blackfriday.NofollowLinks |
				blackfriday.NoreferrerLinks |
				blackfriday.HrefTargetBlank,
		}),
	}
}

// MarkdownToHTML renders s as markdown and sanitises the result.
func (t *Template) MarkdownToHTML(s string) stdtemplate.HTML {
	out := blackfriday.Run([]byte(s), blackfriday.WithRenderer(t.renderer))
	return stdtemplate.HTML(strings.TrimSpace(string(t.policy.SanitizeBytes(out))))
}

// HumanTimeSince describes at relative to now, as in "3 days ago".
func (t *Template) HumanTimeSince(at, now time.Time) string {
	return humanize.RelTime(at, now, "ago", "from now")
}

func (t *Template) HumanNumber(n int) string {
	return humanize.Comma(int64(n))
}
