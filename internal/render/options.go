// Package render provides markdown rendering of message bodies and the
// color themes of the chat view.
package render

// Options controls how assistant replies are rendered inside a bubble
type Options struct {
	// Width is the wrap column of the bubble body
	Width int
	// Style is a glamour style name or a path to a JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
}

// DefaultOptions wraps at 80 columns with the dark style
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithWidth sets the wrap column, e.g. to fit a bubble
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
