package window

import "fyne.io/fyne/v2"

const (
	sidePanelFraction = float32(0.25)
	padFraction       = float32(0.04)
	lineSpacing       = float32(5)
)

func padFor(size fyne.Size) float32 {
	return size.Height * padFraction
}

// studyLayout places the timer panel on the left and the side panel in the
// right quarter of the window.
type studyLayout struct{}

func (layout *studyLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	timer, side := objects[0], objects[1]

	pad := padFor(size)
	sideWidth := size.Width * sidePanelFraction
	sideX := size.Width - sideWidth - pad
	if sideX < 0 {
		sideX = 0
	}

	timer.Move(fyne.NewPos(0, 0))
	timer.Resize(fyne.NewSize(sideX-pad, size.Height))

	side.Move(fyne.NewPos(sideX, pad))
	side.Resize(fyne.NewSize(sideWidth, size.Height-2*pad))
}

func (layout *studyLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	timerMin := objects[0].MinSize()
	sideMin := objects[1].MinSize()
	height := timerMin.Height
	if sideMin.Height > height {
		height = sideMin.Height
	}
	return fyne.NewSize(timerMin.Width+sideMin.Width/sidePanelFraction, height)
}

// timerPanelLayout stacks the pie, the phase label and the countdown.
type timerPanelLayout struct{}

func (layout *timerPanelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	pie, label, countdown := objects[0], objects[1], objects[2]

	pad := padFor(size)
	side := size.Height * 0.62
	if side > size.Width-2*pad {
		side = size.Width - 2*pad
	}
	if side < 0 {
		side = 0
	}
	pie.Move(fyne.NewPos((size.Width-side)/2, pad))
	pie.Resize(fyne.NewSize(side, side))

	labelSize := label.MinSize()
	labelY := pad + side + pad
	label.Move(fyne.NewPos(0, labelY))
	label.Resize(fyne.NewSize(size.Width, labelSize.Height))

	countdownSize := countdown.MinSize()
	countdown.Move(fyne.NewPos(0, labelY+labelSize.Height))
	countdown.Resize(fyne.NewSize(size.Width, countdownSize.Height))
}

func (layout *timerPanelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	labelSize := objects[1].MinSize()
	countdownSize := objects[2].MinSize()
	width := labelSize.Width
	if countdownSize.Width > width {
		width = countdownSize.Width
	}
	return fyne.NewSize(width, labelSize.Height+countdownSize.Height+40)
}

// sidePanelLayout puts the clock on top, the timetable below it and the
// status block (volume, key hint, track ticker) at the bottom.
type sidePanelLayout struct{}

func (layout *sidePanelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 6 {
		return
	}
	title, clock, schedule := objects[0], objects[1], objects[2]
	volume, keys, ticker := objects[3], objects[4], objects[5]

	y := float32(0)
	for _, object := range []fyne.CanvasObject{title, clock} {
		height := object.MinSize().Height
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, height))
		y += height + lineSpacing
	}

	statusHeight := volume.MinSize().Height + keys.MinSize().Height + ticker.MinSize().Height + 2*lineSpacing
	statusY := size.Height - statusHeight
	if statusY < y {
		statusY = y
	}

	scheduleHeight := statusY - y - lineSpacing
	if scheduleHeight < 0 {
		scheduleHeight = 0
	}
	schedule.Move(fyne.NewPos(0, y+lineSpacing))
	schedule.Resize(fyne.NewSize(size.Width, scheduleHeight))

	for _, object := range []fyne.CanvasObject{volume, keys, ticker} {
		height := object.MinSize().Height
		object.Move(fyne.NewPos(0, statusY))
		object.Resize(fyne.NewSize(size.Width, height))
		statusY += height + lineSpacing
	}
}

func (layout *sidePanelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, object := range objects {
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		height += minSize.Height + lineSpacing
	}
	return fyne.NewSize(width, height)
}

// centeredLinesLayout stacks its objects around one third of the height,
// as used by the prompt and message screens.
type centeredLinesLayout struct{}

func (layout *centeredLinesLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	y := size.Height / 3
	for _, object := range objects {
		if !object.Visible() {
			continue
		}
		height := object.MinSize().Height
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, height))
		y += height + 2*lineSpacing
	}
}

func (layout *centeredLinesLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, object := range objects {
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		height += minSize.Height + 2*lineSpacing
	}
	return fyne.NewSize(width, height)
}
