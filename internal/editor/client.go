package editor

// Face names a display style resolved by the rendering layer. The
// input core only carries faces through; it never interprets them.
type Face string

// Standard faces used by the input core.
const (
	FaceDefault Face = "Default"
	FacePrompt  Face = "Prompt"
	FaceError   Face = "Error"
)

// StatusLine is a piece of text with a face, shown in the status area.
type StatusLine struct {
	Text string
	Face Face
}

// Client is the display surface attached to a context. Implementations
// must make InfoShow replace any visible info box and InfoHide a no-op
// when nothing is shown.
type Client interface {
	// Echo displays a message in the status area.
	Echo(line StatusLine)

	// InfoShow displays a contextual info box, replacing any current one.
	InfoShow(title, content string)

	// InfoHide removes the info box if one is visible.
	InfoHide()
}
