package graphic

import "github.com/nsf/termbox-go"

var (
	styleBar  = termbox.ColorDefault
	stylePeak = termbox.ColorLightGray
	styleBack = termbox.ColorDefault
)

// Write draws one frame of bar and peak values, both in [0, 1], bottom
// up from the last terminal row.
func (d *Display) Write(bars, peaks []float64) error {
	termbox.Clear(termbox.ColorDefault, styleBack)

	width, height := termbox.Size()

	d.mu.Lock()
	barWidth, spaceWidth := d.barWidth, d.spaceWidth
	d.mu.Unlock()

	binWidth := barWidth + spaceWidth

	col := 0
	for i := 0; i < len(bars) && col+barWidth <= width; i++ {
		cells := bars[i] * float64(height)

		full := int(cells)
		frac := int((cells - float64(full)) * NumRunes)

		peakRow := -1
		if peaks[i] > bars[i] {
			peakRow = height - 1 - int(peaks[i]*float64(height))
			if peakRow < 0 {
				peakRow = 0
			}
		}

		for x := 0; x < barWidth; x++ {
			row := height - 1

			for b := 0; b < full && row >= 0; b++ {
				termbox.SetCell(col+x, row, BarRune, styleBar, styleBack)
				row--
			}

			if row >= 0 && frac > 0 {
				termbox.SetCell(col+x, row, fracRunes[frac], styleBar, styleBack)
			}

			if peakRow >= 0 && peakRow < row {
				termbox.SetCell(col+x, peakRow, PeakRune, stylePeak, styleBack)
			}
		}

		col += binWidth
	}

	return termbox.Flush()
}
