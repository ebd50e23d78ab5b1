package models

import (
	"fmt"
	"os"

	rv "agri_holding/internal/recordview"

	"gopkg.in/yaml.v3"
)

// entitiesFile cấu trúc file YAML bổ sung/ghi đè cấu hình loại bản ghi
type entitiesFile struct {
	Entities []rv.EntityConfig `yaml:"entities"`
}

// LoadEntities trả về DefaultEntities đã áp dụng file YAML (nếu path khác rỗng).
// Entity trùng tên thay thế cấu hình mặc định, giữ lại dữ liệu mẫu nếu file không khai báo fixtures.
// Entity mới được thêm vào cuối danh sách.
func LoadEntities(path string) ([]rv.EntityConfig, error) {
	entities := DefaultEntities()
	if path == "" {
		return entities, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entities file: %w", err)
	}
	var file entitiesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse entities file %s: %w", path, err)
	}

	index := make(map[string]int, len(entities))
	for i, e := range entities {
		index[e.Name] = i
	}

	for _, override := range file.Entities {
		override = override.WithDefaults()
		if err := override.Validate(); err != nil {
			return nil, fmt.Errorf("entities file %s: %w", path, err)
		}
		if i, ok := index[override.Name]; ok {
			if len(override.Fixtures) == 0 {
				override.Fixtures = entities[i].Fixtures
			}
			entities[i] = override
			continue
		}
		index[override.Name] = len(entities)
		entities = append(entities, override)
	}
	return entities, nil
}
