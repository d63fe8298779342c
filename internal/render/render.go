package render

import "strings"

func renderMarkdown(content string, opts Options) (string, error) {
	k := keyFor(opts)
	r, err := bubbles.acquire(k)
	if err != nil {
		return "", err
	}
	defer bubbles.release(k, r)
	return r.Render(content)
}

// MessageBody renders an assistant reply for a chat bubble. Glamour's
// surrounding blank lines are trimmed; on failure the raw text is returned.
func MessageBody(content string, opts Options) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	out, err := renderMarkdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
