// Package recordview là pipeline lọc / sắp xếp / phân trang bản ghi dùng chung cho mọi màn hình
// "Records Viewer" (farm records, schedule records, reports, certifications, ...).
//
// Bản ghi được giữ nguyên thứ tự field như nguồn dữ liệu trả về, vì header khi xuất file
// được suy ra từ thứ tự key của bản ghi đầu tiên.
package recordview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// Record một dòng dữ liệu dạng key/value có thứ tự.
// Giá trị zero là bản ghi rỗng dùng được ngay.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord tạo bản ghi từ danh sách key, value xen kẽ.
// Key không phải string bị bỏ qua.
func NewRecord(kv ...any) Record {
	var r Record
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			r.Set(key, kv[i+1])
		}
	}
	return r
}

// FromMap tạo bản ghi từ map, key được sắp xếp tăng dần vì map không có thứ tự
func FromMap(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var r Record
	for _, k := range keys {
		r.Set(k, normalize(m[k]))
	}
	return r
}

// FromBSON tạo bản ghi từ document MongoDB, giữ thứ tự field.
// ObjectID thành chuỗi hex, DateTime thành time.Time, Decimal128 thành float64, document lồng nhau thành Record.
func FromBSON(doc bson.D) Record {
	var r Record
	for _, e := range doc {
		r.Set(e.Key, normalize(e.Value))
	}
	return r
}

// normalize chuyển các kiểu đặc thù của driver về kiểu Go thông thường
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return primitive.DateTime(int64(t.T) * 1000).Time().UTC()
	case primitive.Decimal128:
		if f, ok := toFloat(t); ok {
			return f
		}
		return t.String()
	case bson.D:
		return FromBSON(t)
	case bson.M:
		return FromMap(map[string]any(t))
	case map[string]any:
		return FromMap(t)
	case bson.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return v
	}
}

// Get trả về giá trị của key, ok = false nếu key không tồn tại
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has kiểm tra key có tồn tại và khác nil
func (r Record) Has(key string) bool {
	v, ok := r.values[key]
	return ok && v != nil
}

// Keys trả về bản sao danh sách key theo thứ tự gốc
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len số field của bản ghi
func (r Record) Len() int {
	return len(r.keys)
}

// Set gán giá trị cho key; key mới được thêm vào cuối
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Clone sao chép bản ghi (nông ở cấp giá trị)
func (r Record) Clone() Record {
	c := Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Equal so sánh thứ tự key và giá trị; go-cmp dùng phương thức này khi so sánh Record
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if !reflect.DeepEqual(r.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// ToBSON chuyển bản ghi về bson.D để ghi vào MongoDB
func (r Record) ToBSON() bson.D {
	doc := make(bson.D, 0, len(r.keys))
	for _, k := range r.keys {
		doc = append(doc, bson.E{Key: k, Value: toBSONValue(r.values[k])})
	}
	return doc
}

func toBSONValue(v any) any {
	switch t := v.(type) {
	case Record:
		return t.ToBSON()
	case []any:
		out := make(bson.A, len(t))
		for i, item := range t {
			out[i] = toBSONValue(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON ghi object JSON theo đúng thứ tự key
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON đọc object JSON, giữ thứ tự key như trong tài liệu.
// Số nguyên thành int64, số thực thành float64.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}
	rec, err := decodeJSONObject(dec)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

func decodeJSONObject(dec *json.Decoder) (Record, error) {
	var r Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return r, err
		}
		key, ok := tok.(string)
		if !ok {
			return r, fmt.Errorf("unexpected key token %v", tok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return r, err
		}
		r.Set(key, val)
	}
	// '}'
	if _, err := dec.Token(); err != nil {
		return r, err
	}
	return r, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			out := []any{}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}

// UnmarshalYAML đọc mapping YAML (dùng cho fixtures trong file cấu hình loại bản ghi)
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: record must be a mapping", node.Line)
	}
	rec, err := decodeYAMLMapping(node)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

func decodeYAMLMapping(node *yaml.Node) (Record, error) {
	var r Record
	for i := 0; i+1 < len(node.Content); i += 2 {
		val, err := decodeYAMLValue(node.Content[i+1])
		if err != nil {
			return r, err
		}
		r.Set(node.Content[i].Value, val)
	}
	return r, nil
}

func decodeYAMLValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return decodeYAMLMapping(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeYAMLValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return decodeYAMLValue(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		return v, nil
	}
}
