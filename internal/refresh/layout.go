package refresh

// Layout is where the host draws each layer for a given offset. Header is the
// translation of the header's top edge from the container top, Footer the
// translation of the footer's bottom edge from the container bottom, Content
// the translation of the content. Positive values move down.
type Layout struct {
	Header  float64
	Footer  float64
	Content float64

	// HeaderOnTop and FooterOnTop report whether the indicator draws over
	// the content rather than behind it.
	HeaderOnTop bool
	FooterOnTop bool
}

// Placement resolves the layer translations for offset under the given scroll
// modes.
func Placement(offset float64, ext Extents, headerMode, footerMode ScrollMode) Layout {
	l := Layout{
		HeaderOnTop: onTop(headerMode),
		FooterOnTop: onTop(footerMode),
	}

	switch headerMode {
	case Translate, FixedContent:
		l.Header = offset - ext.Header
	}
	switch footerMode {
	case Translate, FixedContent:
		l.Footer = offset + ext.Footer
	}

	mode := footerMode
	if offset > 0 {
		mode = headerMode
	}
	switch mode {
	case Translate, FixedBehind:
		l.Content = offset
	}
	return l
}

func onTop(m ScrollMode) bool {
	return m == FixedContent || m == FixedFront
}
