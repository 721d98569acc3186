package chat

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```([A-Za-z0-9_+#.-]*)[^\\n]*\\n(.*?)```")
	urlRe       = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
	imageExts   = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}
)

// Segment is a run of message content that renders one way.
type Segment struct {
	Code     bool
	Language string
	Text     string
}

// Segments splits content into prose and fenced code blocks, in order.
// An unterminated fence is treated as prose.
func Segments(content string) []Segment {
	var out []Segment
	rest := content
	for {
		loc := codeFenceRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			if rest != "" {
				out = append(out, Segment{Text: rest})
			}
			return out
		}
		if loc[0] > 0 {
			out = append(out, Segment{Text: rest[:loc[0]]})
		}
		out = append(out, Segment{
			Code:     true,
			Language: rest[loc[2]:loc[3]],
			Text:     strings.TrimSuffix(rest[loc[4]:loc[5]], "\n"),
		})
		rest = rest[loc[1]:]
	}
}

// DetectType infers how content should be rendered. Fenced code wins over
// links; a message whose only URL points at an image is an image message.
func DetectType(content string) (MessageType, *Metadata) {
	if m := codeFenceRe.FindStringSubmatch(content); m != nil {
		return TypeCode, &Metadata{Language: m[1], CodeBlock: true}
	}

	raw := urlRe.FindString(content)
	if raw == "" {
		return TypeText, nil
	}
	preview := PreviewFor(raw)
	if preview == nil {
		return TypeText, nil
	}
	lower := strings.ToLower(preview.URL)
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			preview.Image = preview.URL
			return TypeImage, &Metadata{LinkPreview: preview}
		}
	}
	return TypeLink, &Metadata{LinkPreview: preview}
}

// PreviewFor derives a link preview from the URL alone. Returns nil when raw
// is not an absolute http(s) URL.
func PreviewFor(raw string) *LinkPreview {
	raw = strings.TrimRight(raw, ".,;:!?")
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil
	}
	domain := strings.TrimPrefix(u.Hostname(), "www.")

	title := domain
	if p := strings.Trim(u.Path, "/"); p != "" {
		segs := strings.Split(p, "/")
		title = domain + " · " + segs[len(segs)-1]
	}
	return &LinkPreview{
		Title:       title,
		Description: u.String(),
		URL:         u.String(),
		Domain:      domain,
	}
}
