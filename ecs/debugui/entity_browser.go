package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/okit/ecs"
)

type EntityInfo struct {
	Entity         *ecs.Entity
	Name           string
	ID             string
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(scene *ecs.Scene, maxEntitiesPerPage int) *EntityBrowserComponent {
	return &EntityBrowserComponent{
		scene: scene,
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(*ecs.UpdateFrame) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.FilteredEntities()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected == entity.Entity
			if imgui.SelectableBoolV(entity.Name+"##"+entity.ID, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(entity.ID[:8])

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.FilteredEntities()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// Refresh rebuilds the entity table from the scene. Entities change
// components freely, so the table is rebuilt every frame.
func (eb *EntityBrowserComponent) Refresh() {
	eb.cache.entities = eb.cache.entities[:0]

	for _, e := range eb.scene.Entities() {
		components := e.Components()
		componentTypes := make([]string, len(components))
		for i, c := range components {
			componentTypes[i] = c.Type().Name()
		}

		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			Entity:         e,
			Name:           e.String(),
			ID:             e.ID().String(),
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}

	if eb.selected != nil && eb.scene.EntityByID(eb.selected.ID()) == nil {
		eb.selected = nil
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) SortBy(column int, ascending bool) {
	eb.cache.sortColumn = column
	eb.cache.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = a.ID < b.ID
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.Name < b.Name
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

// SetFilter restricts the table to entities matching text in their name,
// id or component type names.
func (eb *EntityBrowserComponent) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// SetTypeFilter restricts the table to entities holding a component whose
// type has the given name. An empty name clears the restriction.
func (eb *EntityBrowserComponent) SetTypeFilter(typeName string) {
	eb.filterType = typeName
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) FilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterType == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterType != "" && !contains(entity.ComponentTypes, eb.filterType) {
			continue
		}

		if eb.filterText != "" {
			nameStr := strings.ToLower(entity.Name)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(nameStr, filterLower) &&
				!strings.Contains(entity.ID, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (eb *EntityBrowserComponent) Select(e *ecs.Entity) {
	eb.selected = e
}

func (eb *EntityBrowserComponent) Selected() *ecs.Entity {
	return eb.selected
}
