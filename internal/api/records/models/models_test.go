package models

import (
	"os"
	"path/filepath"
	"testing"

	rv "agri_holding/internal/recordview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEntities_AreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range DefaultEntities() {
		require.NoError(t, e.Validate(), e.Name)
		assert.False(t, seen[e.Name], "trùng tên entity %s", e.Name)
		seen[e.Name] = true
		assert.NotEmpty(t, e.Fixtures, "%s cần dữ liệu mẫu", e.Name)
		assert.NotEmpty(t, e.SearchableFields, e.Name)
		for _, r := range e.Fixtures {
			assert.NotEmpty(t, e.RecordID(r), "%s: bản ghi mẫu thiếu id", e.Name)
		}
	}
	assert.Len(t, seen, 8)
}

func TestDefaultEntities_KanoniFixtureSearchable(t *testing.T) {
	var farms rv.EntityConfig
	for _, e := range DefaultEntities() {
		if e.Name == EntityFarmRecords {
			farms = e
		}
	}
	got := rv.FilterBySearch(farms.Fixtures, farms, "kanoni")
	require.Len(t, got, 1)
	assert.Equal(t, "farm-001", farms.RecordID(got[0]))
	assert.Equal(t, "farm_records", farms.Collection)
}

func TestCertifications_CurrentTabIsValidOrExpiringSoon(t *testing.T) {
	var certs rv.EntityConfig
	for _, e := range DefaultEntities() {
		if e.Name == EntityCertifications {
			certs = e
		}
	}
	got := rv.FilterByStatus(certs.Fixtures, certs, "current")
	var statuses []string
	for _, r := range got {
		v, _ := r.Get("status")
		statuses = append(statuses, rv.Text(v))
	}
	assert.ElementsMatch(t, []string{"valid", "expiring-soon"}, statuses)
}

func TestLoadEntities_MergesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.yaml")
	content := `
entities:
  - name: farm-records
    label: Farms
    searchable_fields: [farm_name]
    default_sort: {key: farm_name, direction: asc}
  - name: procurement
    label: Procurement
    status_tabs: [all, open, closed]
    fixtures:
      - id: po-1
        supplier: Kampala Agro Supplies
        amount: 1200
        status: open
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entities, err := LoadEntities(path)
	require.NoError(t, err)
	require.Len(t, entities, 9)

	farms := entities[0]
	assert.Equal(t, "Farms", farms.Label)
	assert.Equal(t, []string{"farm_name"}, farms.SearchableFields)
	assert.Equal(t, rv.SortState{Key: "farm_name", Direction: rv.Ascending}, farms.DefaultSort)
	assert.NotEmpty(t, farms.Fixtures, "giữ dữ liệu mẫu mặc định")

	procurement := entities[8]
	assert.Equal(t, "procurement", procurement.Collection)
	require.Len(t, procurement.Fixtures, 1)
	assert.Equal(t, []string{"id", "supplier", "amount", "status"}, procurement.Fixtures[0].Keys())
	amount, _ := procurement.Fixtures[0].Get("amount")
	assert.Equal(t, int64(1200), amount)
}

func TestLoadEntities_Errors(t *testing.T) {
	_, err := LoadEntities(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - name: bad\n    collection: \"x; drop\"\n"), 0o644))
	_, err = LoadEntities(path)
	assert.ErrorContains(t, err, "invalid collection")
}

func TestLoadEntities_ExampleFile(t *testing.T) {
	entities, err := LoadEntities(filepath.Join("..", "..", "..", "..", "config", "entities.example.yaml"))
	require.NoError(t, err)
	require.Len(t, entities, len(DefaultEntities())+1)

	milk := entities[len(entities)-1]
	assert.Equal(t, "milk-collections", milk.Name)
	assert.Equal(t, "milk_collections", milk.Collection)
	require.Len(t, milk.Fixtures, 2)
	supplier, _ := milk.Fixtures[0].Get("supplier_name")
	assert.Equal(t, "Rwebitaba Farmers Group", rv.Text(supplier))

	for _, e := range entities {
		if e.Name == EntityInventory {
			assert.Equal(t, []string{"updated_at"}, e.DateFields)
			assert.NotEmpty(t, e.Fixtures, "giữ dữ liệu mẫu mặc định khi file không khai báo fixtures")
		}
	}
}
