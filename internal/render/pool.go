package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdlePerKey bounds the idle renderers kept for one bubble layout
const maxIdlePerKey = 4

// bubbleKey groups renderers that produce identical output for a bubble
type bubbleKey struct {
	style    string
	width    int
	emoji    bool
	newlines bool
}

func keyFor(opts Options) bubbleKey {
	return bubbleKey{
		style:    ResolveStyle(opts.Style),
		width:    opts.Width,
		emoji:    opts.EnableEmoji,
		newlines: opts.PreserveNewLines,
	}
}

// bubblePool hands out glamour renderers per bubble layout. A TermRenderer
// is not safe for concurrent Render calls, so a renderer is checked out for
// the duration of one call.
type bubblePool struct {
	mu   sync.Mutex
	idle map[bubbleKey][]*glamour.TermRenderer
}

var bubbles = &bubblePool{idle: make(map[bubbleKey][]*glamour.TermRenderer)}

func (p *bubblePool) acquire(k bubbleKey) (*glamour.TermRenderer, error) {
	p.mu.Lock()
	if free := p.idle[k]; len(free) > 0 {
		r := free[len(free)-1]
		p.idle[k] = free[:len(free)-1]
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()
	return newBubbleRenderer(k)
}

func (p *bubblePool) release(k bubbleKey, r *glamour.TermRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.idle[k]) < maxIdlePerKey {
		p.idle[k] = append(p.idle[k], r)
	}
}

// idleCount returns the idle renderers held for k
func (p *bubblePool) idleCount(k bubbleKey) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle[k])
}

func (p *bubblePool) reset() {
	p.mu.Lock()
	p.idle = make(map[bubbleKey][]*glamour.TermRenderer)
	p.mu.Unlock()
}

// newBubbleRenderer builds a renderer for k. The style may be a built-in
// glamour name or a JSON style file.
func newBubbleRenderer(k bubbleKey) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStylePath(k.style),
		glamour.WithWordWrap(k.width),
	}
	if k.emoji {
		opts = append(opts, glamour.WithEmoji())
	}
	if k.newlines {
		opts = append(opts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(opts...)
}
