package debugui

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/santa/ecs"
)

// ComponentInspector shows the components of one entity. Float fields can be
// edited in place; everything else is read-only. A float field tagged
// `min:"N"` is never set below N.
type ComponentInspector struct{}

func (ci *ComponentInspector) Render(storage *ecs.Storage, id ecs.EntityId, selected bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !selected {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %d is gone", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", id.ArchetypeId()))
	imgui.Separator()

	for _, compType := range componentTypes(storage, id) {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(compType.Name(), "", reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

func componentTypes(storage *ecs.Storage, id ecs.EntityId) []reflect.Type {
	for _, archetype := range storage.GetArchetypes() {
		if archetype.ID() == id.ArchetypeId() {
			return archetype.Types()
		}
	}
	return nil
}

func renderValue(name string, tag reflect.StructTag, val reflect.Value) {
	switch val.Kind() {
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			field := val.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			renderValue(field.Name, field.Tag, val.Field(i))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFloat(val, tag, float64(v))
		}

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setFloat stores v in val, raised to the field's `min` tag when it has one.
func setFloat(val reflect.Value, tag reflect.StructTag, v float64) {
	if !val.CanSet() {
		return
	}
	if s, ok := tag.Lookup("min"); ok {
		if lo, err := strconv.ParseFloat(s, 64); err == nil {
			v = max(v, lo)
		}
	}
	val.SetFloat(v)
}
