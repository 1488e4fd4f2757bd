package debugui

import (
	"reflect"
	"sync"
)

// Field is an exported field of a component struct as the inspector sees
// it. Fields promoted from embedded structs are listed under their own
// name; the embedded structs themselves, ecs.Base included, are not.
type Field struct {
	Name string
	Path []int
	Kind reflect.Kind // after pointer indirection
	Ptr  bool
}

// Value returns the field within the struct value v, following a field
// pointer. It reports false when a pointer on the way is nil.
func (f Field) Value(v reflect.Value) (reflect.Value, bool) {
	fv, err := v.FieldByIndexErr(f.Path)
	if err != nil {
		return reflect.Value{}, false
	}
	if f.Ptr {
		if fv.IsNil() {
			return reflect.Value{}, false
		}
		fv = fv.Elem()
	}
	return fv, true
}

// FieldCache memoizes field layouts per Go type. The zero value is ready
// to use.
type FieldCache struct {
	layouts sync.Map // reflect.Type -> []Field
}

func (c *FieldCache) Fields(t reflect.Type) []Field {
	if cached, ok := c.layouts.Load(t); ok {
		return cached.([]Field)
	}
	layout, _ := c.layouts.LoadOrStore(t, fieldsOf(t))
	return layout.([]Field)
}

func fieldsOf(t reflect.Type) []Field {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var fields []Field
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		ft, ptr := sf.Type, sf.Type.Kind() == reflect.Pointer
		if ptr {
			ft = ft.Elem()
		}
		fields = append(fields, Field{Name: sf.Name, Path: sf.Index, Kind: ft.Kind(), Ptr: ptr})
	}
	return fields
}

var componentFields FieldCache
