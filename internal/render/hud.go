package render

import "image"

const (
	hudMargin  = 10
	heartWidth = 21
	heartHigh  = 18
	heartGap   = 5
)

// ScoreOrigin is where the score label is printed.
var ScoreOrigin = image.Pt(hudMargin, hudMargin)

// HeartRects lays out n hearts in a row anchored to the top-right corner of a
// window of the given width, leftmost first.
func HeartRects(windowWidth, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rowWidth := n*heartWidth + (n-1)*heartGap
	x := windowWidth - hudMargin - rowWidth

	rects := make([]image.Rectangle, n)
	for i := range rects {
		at := image.Pt(x+i*(heartWidth+heartGap), hudMargin)
		rects[i] = image.Rectangle{Min: at, Max: at.Add(image.Pt(heartWidth, heartHigh))}
	}
	return rects
}
