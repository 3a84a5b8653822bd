package activerecord

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributesOrder(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("name", "Ninja 300")
	attrs.Set("id", 100)
	attrs.Set("owner_id", 3)
	attrs.Set("name", "Ninja 400")

	assert.Equal(t, 3, attrs.Len())
	assert.Equal(t, []string{"name", "id", "owner_id"}, attrs.Keys())
	assert.Equal(t, []interface{}{"Ninja 400", 100, 3}, attrs.Values())
	assert.Equal(t, Fields{{"name", "Ninja 400"}, {"id", 100}, {"owner_id", 3}}, attrs.Fields())

	value, ok := attrs.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Ninja 400", value)

	_, ok = attrs.Get("color")
	assert.False(t, ok)
}

func TestAttributesLazy(t *testing.T) {
	record := &Record{}
	assert.Nil(t, record.attributes)

	attrs := record.Attributes()
	assert.NotNil(t, attrs)
	assert.Equal(t, 0, attrs.Len())
	assert.Same(t, attrs, record.Attributes())
	assert.Empty(t, record.AttributeValues())
}

func TestMap(t *testing.T) {
	fields := Map(map[string]interface{}{"lname": "Weir", "fname": "Amber", "house_id": nil})
	assert.Equal(t, Fields{{"fname", "Amber"}, {"house_id", nil}, {"lname", "Weir"}}, fields)
	assert.Empty(t, Map(nil))
}

func TestRows(t *testing.T) {
	var empty *Rows
	assert.Equal(t, 0, empty.Len())

	rows := &Rows{
		Columns: []string{"id", "name"},
		Values:  [][]interface{}{{int64(1), "Yamaha R1"}, {int64(2)}},
	}
	assert.Equal(t, Fields{{"id", int64(1)}, {"name", "Yamaha R1"}}, rows.Fields(0))
	assert.Equal(t, Fields{{"id", int64(2)}, {"name", nil}}, rows.Fields(1))
	assert.Len(t, rows.All(), 2)

	assert.Empty(t, (&Rows{Columns: []string{"id"}}).All())
}

func TestUnknownAttributeError(t *testing.T) {
	var err error = &UnknownAttributeError{Model: "Motorcycle", Column: "hello"}
	assert.EqualError(t, err, "unknown attribute: 'hello'")
	assert.True(t, errors.Is(err, ErrUnknownAttribute))
	assert.False(t, errors.Is(err, ErrUnknownAssociation))
}

func TestOpenInvalidDialector(t *testing.T) {
	_, err := Open(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDialector)
}
