package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/okit/ecs"
)

// TypeInfo summarizes how many entities hold a component type.
type TypeInfo struct {
	Name        string
	EntityCount int
	RelayCount  int
}

type TypeViewerCache struct {
	types         []TypeInfo
	sortColumn    int
	sortAscending bool
}

// NewTypeViewerComponent creates the "Component Types" panel. Clicking a
// row filters browser, when set, to entities holding that type.
func NewTypeViewerComponent(scene *ecs.Scene, browser *EntityBrowserComponent) *TypeViewerComponent {
	return &TypeViewerComponent{
		scene:   scene,
		browser: browser,
		cache: &TypeViewerCache{
			sortColumn:    1,
			sortAscending: false,
		},
	}
}

func (tv *TypeViewerComponent) Render(*ecs.UpdateFrame) {
	if !imgui.BeginV("Component Types", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	tv.Refresh()

	maxEntityCount := 0
	for _, info := range tv.cache.types {
		maxEntityCount = max(maxEntityCount, info.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component Type")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Relayed")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, info := range tv.cache.types {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.selectedType == info.Name
			if imgui.SelectableBoolV(info.Name, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tv.selectType(info.Name)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.RelayCount))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (tv *TypeViewerComponent) selectType(name string) {
	if tv.selectedType == name {
		name = ""
	}
	tv.selectedType = name
	if tv.browser != nil {
		tv.browser.SetTypeFilter(name)
	}
}

// Refresh counts component types across the scene. Relays are counted
// under their target's type.
func (tv *TypeViewerComponent) Refresh() {
	byName := make(map[string]*TypeInfo)
	lookup := func(name string) *TypeInfo {
		info, ok := byName[name]
		if !ok {
			info = &TypeInfo{Name: name}
			byName[name] = info
		}
		return info
	}

	for _, e := range tv.scene.Entities() {
		for _, c := range e.Components() {
			if relay, ok := c.(ecs.Relayer); ok {
				lookup(relay.Target().Type().Name()).RelayCount++
				continue
			}
			lookup(c.Type().Name()).EntityCount++
		}
	}

	tv.cache.types = tv.cache.types[:0]
	for _, info := range byName {
		tv.cache.types = append(tv.cache.types, *info)
	}
	tv.sortTypes()
}

func (tv *TypeViewerComponent) Types() []TypeInfo {
	return tv.cache.types
}

func (tv *TypeViewerComponent) SortBy(column int, ascending bool) {
	tv.cache.sortColumn = column
	tv.cache.sortAscending = ascending
	tv.sortTypes()
}

func (tv *TypeViewerComponent) sortTypes() {
	key := func(info TypeInfo) int {
		switch tv.cache.sortColumn {
		case 2:
			return info.RelayCount
		default:
			return info.EntityCount
		}
	}

	sort.Slice(tv.cache.types, func(i, j int) bool {
		a, b := tv.cache.types[i], tv.cache.types[j]

		if tv.cache.sortColumn == 0 || key(a) == key(b) {
			if tv.cache.sortColumn == 0 && !tv.cache.sortAscending {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		}

		if !tv.cache.sortAscending {
			return key(a) > key(b)
		}
		return key(a) < key(b)
	})
}
