package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"studywithme/internal/core/timekeeper"
	"studywithme/internal/ui"
)

type scheduleRow struct {
	root       *fyne.Container
	background *canvas.Rectangle
	text       *canvas.Text
}

// sidePanel shows the clock, the timetable and the status block.
type sidePanel struct {
	root      *fyne.Container
	clock     *canvas.Text
	schedule  *fyne.Container
	rows      []scheduleRow
	volume    *canvas.Text
	ticker    *container.Scroll
	track     *canvas.Text
	rowSize   float32
	trackSize float32
}

func newSidePanel(scale float32) *sidePanel {
	panel := &sidePanel{
		clock:     newText("--:--:--", colorWhite, 20*scale, false),
		schedule:  container.NewVBox(),
		volume:    newText("", colorStatus, 13*scale, false),
		track:     canvas.NewText("", colorStatus),
		rowSize:   16 * scale,
		trackSize: 13 * scale,
	}
	panel.volume.Alignment = fyne.TextAlignLeading
	panel.track.TextSize = panel.trackSize

	keys := newText(ui.KeysHint, colorStatus, 13*scale, false)
	keys.Alignment = fyne.TextAlignLeading

	panel.ticker = container.NewScroll(container.NewWithoutLayout(panel.track))
	panel.ticker.Direction = container.ScrollNone
	panel.ticker.SetMinSize(fyne.NewSize(0, panel.track.MinSize().Height))

	panel.root = container.New(&sidePanelLayout{},
		newText(ui.LocalTime, colorWhite, 20*scale, false),
		panel.clock,
		panel.schedule,
		panel.volume,
		keys,
		panel.ticker,
	)
	return panel
}

func (panel *sidePanel) apply(state timekeeper.Panel) {
	panel.clock.Text = ui.ClockText(state.Now)
	panel.clock.Refresh()

	panel.applySchedule(state.Schedule, state.Current)

	panel.volume.Text = ui.VolumeText(state.VolumePercent)
	panel.volume.Refresh()

	if panel.track.Text != state.Track {
		panel.track.Text = state.Track
		panel.track.Refresh()
	}
	textSize := fyne.MeasureText(state.Track, panel.trackSize, panel.track.TextStyle)
	panel.track.Resize(textSize)
	width := panel.ticker.Size().Width
	x := ui.TickerX(state.TrackScroll, int(width), int(textSize.Width))
	panel.track.Move(fyne.NewPos(float32(x), 0))
}

func (panel *sidePanel) applySchedule(schedule timekeeper.Schedule, current int) {
	if len(panel.rows) != len(schedule) {
		panel.rows = panel.rows[:0]
		objects := make([]fyne.CanvasObject, 0, len(schedule))
		for range schedule {
			row := newScheduleRow(panel.rowSize)
			panel.rows = append(panel.rows, row)
			objects = append(objects, row.root)
		}
		panel.schedule.Objects = objects
		panel.schedule.Refresh()
	}

	for index, interval := range schedule {
		row := panel.rows[index]
		text := ui.ScheduleRow(index, interval)
		var fill, ink color.Color = color.Transparent, colorWhite
		if index == current {
			fill, ink = colorWhite, colorBackground
		}
		if row.text.Text == text && row.text.Color == ink {
			continue
		}
		row.text.Text = text
		row.text.Color = ink
		row.background.FillColor = fill
		row.text.Refresh()
		row.background.Refresh()
	}
}

func newScheduleRow(size float32) scheduleRow {
	background := canvas.NewRectangle(color.Transparent)
	text := newText("", colorWhite, size, false)
	return scheduleRow{
		root:       container.NewStack(background, text),
		background: background,
		text:       text,
	}
}
