package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
)

// NewLogViewerComponent creates a panel showing the entries of l, usually
// the hub's aggregate log.
func NewLogViewerComponent(l *framelog.Log) *LogViewerComponent {
	return &LogViewerComponent{
		log:        l,
		autoScroll: true,
	}
}

func (lv *LogViewerComponent) Render(*ecs.UpdateFrame) {
	if !imgui.BeginV("Log: "+lv.log.Title(), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##logfilter", "Filter...", &lv.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	imgui.Checkbox("Frame starts", &lv.newFrameOnly)
	imgui.SameLine()
	imgui.Checkbox("Follow", &lv.autoScroll)

	disabled := lv.log.IsDisabled()
	if imgui.Checkbox("Disabled", &disabled) {
		lv.log.SetDisabled(disabled)
	}

	entries := lv.Filtered()
	imgui.Text(fmt.Sprintf("%d / %d entries", len(entries), lv.log.Len()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("LogTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Frame")
		imgui.TableSetupColumn("Time")
		imgui.TableSetupColumn("Topic")
		imgui.TableSetupColumn("Function")
		imgui.TableSetupColumn("Text")
		imgui.TableHeadersRow()

		for _, e := range entries {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if e.NewFrame {
				imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), fmt.Sprintf("%d", e.Frame))
			} else {
				imgui.Text(fmt.Sprintf("%d", e.Frame))
			}

			imgui.TableNextColumn()
			imgui.Text(e.Time.Format("15:04:05.000"))

			imgui.TableNextColumn()
			imgui.Text(e.Topic)

			imgui.TableNextColumn()
			imgui.Text(e.Function)

			imgui.TableNextColumn()
			imgui.Text(e.Text)
		}

		if lv.autoScroll && lv.log.Len() != lv.lastLen {
			imgui.SetScrollHereY()
		}
		lv.lastLen = lv.log.Len()

		imgui.EndTable()
	}

	imgui.End()
}

func (lv *LogViewerComponent) SetFilter(text string) {
	lv.filterText = text
}

func (lv *LogViewerComponent) SetNewFrameOnly(on bool) {
	lv.newFrameOnly = on
}

// Filtered returns the entries passing the current filter, oldest first.
func (lv *LogViewerComponent) Filtered() []framelog.Entry {
	filterLower := strings.ToLower(lv.filterText)

	var entries []framelog.Entry
	for _, e := range lv.log.All() {
		if lv.newFrameOnly && !e.NewFrame {
			continue
		}
		if filterLower != "" &&
			!strings.Contains(strings.ToLower(e.Text), filterLower) &&
			!strings.Contains(strings.ToLower(e.Topic), filterLower) &&
			!strings.Contains(strings.ToLower(e.Function), filterLower) {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
