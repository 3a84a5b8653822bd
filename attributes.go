package activerecord

import "sort"

// Field one column => value pair
type Field struct {
	Column string
	Value  interface{}
}

// Fields ordered column => value mapping, used for construction input and criteria
type Fields []Field

// Map converts m into Fields sorted by column, so Where binds map criteria alphabetically
func Map(m map[string]interface{}) Fields {
	columns := make([]string, 0, len(m))
	for column := range m {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	fields := make(Fields, 0, len(columns))
	for _, column := range columns {
		fields = append(fields, Field{Column: column, Value: m[column]})
	}
	return fields
}

// Attributes insertion-ordered attribute mapping backing a record's accessors
type Attributes struct {
	keys   []string
	values map[string]interface{}
}

// NewAttributes creates an empty attribute mapping
func NewAttributes() *Attributes {
	return &Attributes{values: map[string]interface{}{}}
}

// Get value for column
func (attrs *Attributes) Get(column string) (interface{}, bool) {
	value, ok := attrs.values[column]
	return value, ok
}

// Set value for column, a new column is appended after existing ones
func (attrs *Attributes) Set(column string, value interface{}) {
	if _, ok := attrs.values[column]; !ok {
		attrs.keys = append(attrs.keys, column)
	}
	attrs.values[column] = value
}

// Len number of set columns
func (attrs *Attributes) Len() int {
	return len(attrs.keys)
}

// Keys columns in assignment order
func (attrs *Attributes) Keys() []string {
	return append([]string(nil), attrs.keys...)
}

// Values values in assignment order
func (attrs *Attributes) Values() []interface{} {
	values := make([]interface{}, 0, len(attrs.keys))
	for _, key := range attrs.keys {
		values = append(values, attrs.values[key])
	}
	return values
}

// Fields columns and values in assignment order
func (attrs *Attributes) Fields() Fields {
	fields := make(Fields, 0, len(attrs.keys))
	for _, key := range attrs.keys {
		fields = append(fields, Field{Column: key, Value: attrs.values[key]})
	}
	return fields
}
