package paging

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm/schema"
)

// Field is a sortable column of an entity type. Values are only obtained
// from a Schema, so a Field always names a column that exists on the type.
type Field struct {
	Name   string // Go struct field name
	Column string // database column
	JSON   string // json tag name, empty when untagged
	Kind   reflect.Kind

	index   []int
	compare func(a, b reflect.Value) int
}

// Compare orders two records by this field. Nil pointers sort first.
func (f Field) Compare(a, b any) int {
	av, aok := f.valueOf(reflect.ValueOf(a))
	bv, bok := f.valueOf(reflect.ValueOf(b))
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return f.compare(av, bv)
}

func (f Field) valueOf(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	for _, i := range f.index {
		// negative index marks an embedded pointer, see gorm/schema
		if i < 0 {
			v = v.Field(-i - 1)
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
			continue
		}
		v = v.Field(i)
	}
	return v, true
}

func (f Field) matches(name string) bool {
	return strings.EqualFold(name, f.Name) ||
		strings.EqualFold(name, f.Column) ||
		(f.JSON != "" && strings.EqualFold(name, f.JSON))
}

// Schema is the immutable set of sortable fields of one entity type.
// Key is the primary key field, nil when the type has none or it is not sortable.
type Schema struct {
	Name   string
	Fields []Field
	Key    *Field
}

// Lookup finds a field by Go name, column name or json name, ignoring case.
func (s *Schema) Lookup(name string) (Field, bool) {
	if name == "" {
		return Field{}, false
	}
	for _, f := range s.Fields {
		if f.matches(name) {
			return f, true
		}
	}
	return Field{}, false
}

var (
	schemas     sync.Map // reflect.Type -> *Schema
	gormSchemas = &sync.Map{}
	namer       = schema.NamingStrategy{}
	timeType    = reflect.TypeOf(time.Time{})
)

// SchemaOf returns the schema of T, parsing it on first use.
func SchemaOf[T any]() (*Schema, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := schemas.Load(typ); ok {
		return cached.(*Schema), nil
	}

	parsed, err := schema.Parse(new(T), gormSchemas, namer)
	if err != nil {
		return nil, fmt.Errorf("parse schema of %s: %w", typ, err)
	}

	s := &Schema{Name: parsed.Name}
	for _, f := range parsed.Fields {
		if f.DBName == "" || !f.Readable {
			continue
		}
		jsonName, hidden := jsonTagName(f.Tag)
		if hidden {
			continue
		}
		compare, ok := comparatorFor(f.FieldType)
		if !ok {
			continue
		}
		s.Fields = append(s.Fields, Field{
			Name:    f.Name,
			Column:  f.DBName,
			JSON:    jsonName,
			Kind:    f.IndirectFieldType.Kind(),
			index:   f.StructField.Index,
			compare: compare,
		})
	}

	if pk := parsed.PrioritizedPrimaryField; pk != nil {
		for i := range s.Fields {
			if s.Fields[i].Name == pk.Name {
				s.Key = &s.Fields[i]
				break
			}
		}
	}

	actual, _ := schemas.LoadOrStore(typ, s)
	return actual.(*Schema), nil
}

// IsValidProperty reports whether name denotes a sortable field of T.
func IsValidProperty[T any](name string) bool {
	_, ok := lookup[T](name)
	return ok
}

// Property is the strict form of IsValidProperty.
func Property[T any](name string) (Field, error) {
	s, err := SchemaOf[T]()
	if err != nil {
		return Field{}, err
	}
	field, ok := s.Lookup(name)
	if !ok {
		return Field{}, &PropertyNotFoundError{Type: s.Name, Property: name}
	}
	return field, nil
}

func lookup[T any](name string) (Field, bool) {
	s, err := SchemaOf[T]()
	if err != nil {
		return Field{}, false
	}
	return s.Lookup(name)
}

func jsonTagName(tag reflect.StructTag) (name string, hidden bool) {
	name, _, _ = strings.Cut(tag.Get("json"), ",")
	if name == "-" {
		return "", true
	}
	return name, false
}

func comparatorFor(t reflect.Type) (func(a, b reflect.Value) int, bool) {
	if t.Kind() == reflect.Pointer {
		elem, ok := comparatorFor(t.Elem())
		if !ok {
			return nil, false
		}
		return func(a, b reflect.Value) int {
			switch {
			case a.IsNil() && b.IsNil():
				return 0
			case a.IsNil():
				return -1
			case b.IsNil():
				return 1
			}
			return elem(a.Elem(), b.Elem())
		}, true
	}

	if t == timeType {
		return func(a, b reflect.Value) int {
			return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
		}, true
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }, true
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) }, true
	case reflect.String:
		return func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) }, true
	case reflect.Bool:
		return func(a, b reflect.Value) int {
			switch {
			case a.Bool() == b.Bool():
				return 0
			case a.Bool():
				return 1
			}
			return -1
		}, true
	}
	return nil, false
}
