package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/santa/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists live entities in a sortable, filterable table. Selecting
// a row makes it the entity shown by the ComponentInspector.
type EntityBrowser struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
	selected      ecs.EntityId
	hasSelection  bool
	filterText    string
	perPage       int
	currentPage   int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{sortAscending: true, perPage: perPage}
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// entities come and go every frame, so the list is rebuilt each render
	eb.entities = collectEntities(storage)
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := filterEntities(eb.entities, eb.filterText)
	totalPages := max(1, (len(filtered)+eb.perPage-1)/eb.perPage)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(filtered, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.perPage
		end := min(start+eb.perPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selected == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.currentPage < totalPages-1 {
		eb.currentPage++
	}

	imgui.End()
}

// Selected returns the selected entity, if any.
func (eb *EntityBrowser) Selected() (ecs.EntityId, bool) {
	return eb.selected, eb.hasSelection
}

func collectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo
	for _, archetype := range storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// filterEntities keeps entities whose ID, archetype or component names contain
// text, ignoring case.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if strings.Contains(idStr, needle) ||
			strings.Contains(archStr, needle) ||
			strings.Contains(componentsStr, needle) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}
