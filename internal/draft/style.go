package draft

// TextStyle configures how text materials render on the timeline.
type TextStyle struct {
	FontSize        int
	FontColor       string
	BackgroundColor string
	BackgroundAlpha float64
	// PositionY is the vertical anchor: 0.0 is the top edge, 1.0 the bottom.
	PositionY float64
	Bold      bool
	FontPath  string
}

// DefaultTextStyle is a white caption on a translucent black box in the
// lower third.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:        8,
		FontColor:       "#FFFFFF",
		BackgroundColor: "#000000",
		BackgroundAlpha: 0.6,
		PositionY:       0.8,
	}
}
