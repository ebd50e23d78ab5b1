package recordview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

func TestRecord_JSONKeepsKeyOrder(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"farm_name":"X","daily_production":10,"yield":2.5,"created_at":"2025-01-01","meta":{"z":1,"a":[true,null]}}`), &r))

	assert.Equal(t, []string{"farm_name", "daily_production", "yield", "created_at", "meta"}, r.Keys())
	v, _ := r.Get("daily_production")
	assert.Equal(t, int64(10), v)
	v, _ = r.Get("yield")
	assert.Equal(t, 2.5, v)

	meta, _ := r.Get("meta")
	nested, ok := meta.(Record)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, nested.Keys())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"farm_name":"X","daily_production":10,"yield":2.5,"created_at":"2025-01-01","meta":{"z":1,"a":[true,null]}}`, string(out))
	assert.Equal(t, `{"farm_name":"X","daily_production":10,"yield":2.5,"created_at":"2025-01-01","meta":{"z":1,"a":[true,null]}}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

func TestRecord_YAMLKeepsKeyOrder(t *testing.T) {
	src := `
- id: f1
  farm_name: Kanoni Coffee Farm
  daily_production: 120
  crops: [coffee, banana]
  owner:
    name: Muheesi
`
	var records []Record
	require.NoError(t, yaml.Unmarshal([]byte(src), &records))
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, []string{"id", "farm_name", "daily_production", "crops", "owner"}, r.Keys())
	v, _ := r.Get("daily_production")
	assert.Equal(t, int64(120), v)
	v, _ = r.Get("crops")
	assert.Equal(t, []any{"coffee", "banana"}, v)
}

func TestRecord_FromBSONNormalizesDriverTypes(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	doc := bson.D{
		{Key: "_id", Value: oid},
		{Key: "farm_name", Value: "Kanoni"},
		{Key: "updated_at", Value: primitive.NewDateTimeFromTime(at)},
		{Key: "location", Value: bson.D{{Key: "district", Value: "Kazo"}}},
		{Key: "tags", Value: bson.A{"coffee", bson.D{{Key: "k", Value: 1}}}},
	}

	r := FromBSON(doc)
	assert.Equal(t, []string{"_id", "farm_name", "updated_at", "location", "tags"}, r.Keys())
	v, _ := r.Get("_id")
	assert.Equal(t, oid.Hex(), v)
	v, _ = r.Get("updated_at")
	assert.Equal(t, at, v)
	v, _ = r.Get("location")
	assert.IsType(t, Record{}, v)
	v, _ = r.Get("tags")
	require.IsType(t, []any{}, v)
	assert.IsType(t, Record{}, v.([]any)[1])

	back := r.ToBSON()
	assert.Equal(t, "location", back[3].Key)
	assert.IsType(t, bson.D{}, back[3].Value)
}

func TestRecord_DecimalValuesSortAsNumbers(t *testing.T) {
	dec := func(s string) primitive.Decimal128 {
		d, err := primitive.ParseDecimal128(s)
		require.NoError(t, err)
		return d
	}
	records := []Record{
		FromBSON(bson.D{{Key: "id", Value: "loan-a"}, {Key: "amount", Value: dec("100.50")}}),
		FromBSON(bson.D{{Key: "id", Value: "loan-b"}, {Key: "amount", Value: dec("9.75")}}),
		FromBSON(bson.D{{Key: "id", Value: "loan-c"}, {Key: "amount", Value: dec("20")}}),
	}

	v, _ := records[0].Get("amount")
	assert.Equal(t, 100.5, v)

	got := SortRecords(records, SortState{Key: "amount", Direction: Ascending})
	assert.Equal(t, []string{"loan-b", "loan-c", "loan-a"}, ids(got))

	n, ok := Number(dec("1250000.25"))
	assert.True(t, ok)
	assert.Equal(t, 1250000.25, n)
}

func TestRecord_SetCloneEqual(t *testing.T) {
	r := NewRecord("a", 1, "b", 2, 3, "bỏ qua")
	assert.Equal(t, 2, r.Len())

	c := r.Clone()
	c.Set("a", 10)
	c.Set("c", 3)

	v, _ := r.Get("a")
	assert.Equal(t, 1, v, "Clone không được chia sẻ map")
	assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
	assert.False(t, r.Equal(c))
	assert.True(t, r.Equal(NewRecord("a", 1, "b", 2)))
	assert.False(t, r.Equal(NewRecord("b", 2, "a", 1)), "thứ tự key khác nhau")

	m := FromMap(map[string]any{"z": 1, "a": map[string]any{"y": 1, "b": 2}})
	assert.Equal(t, []string{"a", "z"}, m.Keys())
	nested, _ := m.Get("a")
	assert.Equal(t, []string{"b", "y"}, nested.(Record).Keys())

	var zero Record
	assert.False(t, zero.Has("x"))
	zero.Set("x", nil)
	assert.False(t, zero.Has("x"))
	assert.Equal(t, 1, zero.Len())
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "2.5", Text(2.5))
	assert.Equal(t, "120", Text(120))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, `{"k":"v"}`, Text(NewRecord("k", "v")))
	assert.Equal(t, `["a",1]`, Text([]any{"a", 1}))
	assert.True(t, IsNested([]any{}))
	assert.False(t, IsNested("x"))
}
