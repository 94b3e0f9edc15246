package render

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/andrehq/vidnotes/internal/types"
)

// asrNotice is appended when the transcript came from automatic speech
// recognition rather than uploader-provided captions.
const asrNotice = "Note: the transcript for this video was generated automatically and may contain errors."

// descriptionTemplate is the fixed output layout. Section headers are always
// emitted; slots without data render empty rather than dropping the section.
const descriptionTemplate = `{{.TitleLine}}

OCR: {{.OCRText}}

{{.EpisodeLine}}

Participants
{{- range .Participants}}
• {{.Name}}{{if .Bio}} — {{.Bio}}{{end}}
{{- end}}

Topics Covered:
{{- range .Chapters}}
{{.Timestamp}} {{.Title}}
{{- end}}

Keywords: {{.Keywords}}

{{.Hashtags}}
{{- if .Notice}}

{{.Notice}}
{{- end}}
`

var descriptionTmpl = template.Must(template.New("description").Parse(descriptionTemplate))

// TemplateData represents the data structure passed to the description template
type TemplateData struct {
	TitleLine    string
	OCRText      string
	EpisodeLine  string
	Participants []types.CanonicalName
	Chapters     []types.Chapter
	Keywords     string
	Hashtags     string
	Notice       string
}

// Render fills the fixed description template from a Description. It is a
// pure function of its input: no network, no IO, identical input gives
// identical output. Missing optional fields (OCR text, bios, keywords) leave
// their slot blank without dropping the section.
func Render(d *types.Description) (string, error) {
	data := buildTemplateData(d)

	var result strings.Builder
	if err := descriptionTmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Message: "failed to execute description template", Cause: err}
	}
	return strings.TrimRight(result.String(), "\n") + "\n", nil
}

func buildTemplateData(d *types.Description) *TemplateData {
	notice := ""
	if d.ASRGenerated {
		notice = asrNotice
	}

	return &TemplateData{
		TitleLine:    titleLine(d.Title, d.Topic),
		OCRText:      d.OCRText,
		EpisodeLine:  episodeLine(d.Participants, d.Content.Summary),
		Participants: d.Participants,
		Chapters:     d.Content.Chapters,
		Keywords:     strings.Join(d.Content.Keywords, ", "),
		Hashtags:     strings.Join(d.Hashtags, " "),
		Notice:       notice,
	}
}

func titleLine(title, topic string) string {
	if topic == "" || strings.EqualFold(topic, title) {
		return title
	}
	return title + " | " + topic
}

// episodeLine produces the lead sentence. With no validated participants the
// sentence drops the name list instead of leaving a dangling comma.
func episodeLine(participants []types.CanonicalName, summary string) string {
	if summary == "" {
		return ""
	}
	names := NameList(participants)
	if names == "" {
		return "Today's episode explores: " + summary
	}
	return "Today's episode, " + names + " explore: " + summary
}

// NameList joins canonical names for prose: "A", "A and B", "A, B and C".
func NameList(participants []types.CanonicalName) string {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// BuildHashtags converts keywords into hashtag form: each keyword becomes a
// single #CamelCase tag, deduplicated, capped at max.
func BuildHashtags(keywords []string, max int) []string {
	if max <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, kw := range keywords {
		tag := hashtag(kw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == max {
			break
		}
	}
	return tags
}

func hashtag(keyword string) string {
	var b strings.Builder
	for _, word := range strings.Fields(keyword) {
		runes := []rune(word)
		wrote := false
		for _, r := range runes {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				continue
			}
			if !wrote {
				b.WriteRune(unicode.ToUpper(r))
				wrote = true
			} else {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "#" + b.String()
}
