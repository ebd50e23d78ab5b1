// Package models chứa cấu hình các loại bản ghi (entity) và dữ liệu mẫu của màn hình xem bản ghi.
package models

import (
	rv "agri_holding/internal/recordview"
)

// Tên các loại bản ghi
const (
	EntityFarmRecords     = "farm-records"
	EntityScheduleRecords = "schedule-records"
	EntityReports         = "reports"
	EntityCertifications  = "certifications"
	EntityInventory       = "inventory"
	EntityTasks           = "tasks"
	EntityLoans           = "loans"
	EntityPayroll         = "payroll"
)

var newestFirst = rv.SortState{Key: "updated_at", Direction: rv.Descending}

// DefaultEntities cấu hình mặc định của các loại bản ghi, đã điền giá trị mặc định
func DefaultEntities() []rv.EntityConfig {
	entities := []rv.EntityConfig{
		{
			Name:             EntityFarmRecords,
			Label:            "Farm Records",
			LabelField:       "farm_name",
			StatusTabs:       []string{rv.StatusAll, "active", "inactive", "pending"},
			SearchableFields: []string{"farm_name", "location", "crop_type", "owner_name"},
			TenantField:      "company",
			DefaultSort:      newestFirst,
			Fixtures:         farmFixtures(),
		},
		{
			Name:             EntityScheduleRecords,
			Label:            "Schedule Records",
			LabelField:       "title",
			StatusTabs:       []string{rv.StatusAll, "scheduled", "completed", "overdue", "cancelled"},
			DateFields:       []string{"scheduled_date", "updated_at"},
			SearchableFields: []string{"title", "activity_type", "farm_name", "assigned_to"},
			DefaultSort:      rv.SortState{Key: "scheduled_date", Direction: rv.Ascending},
			Fixtures:         scheduleFixtures(),
		},
		{
			Name:             EntityReports,
			Label:            "Reports",
			LabelField:       "report_name",
			StatusTabs:       []string{rv.StatusAll, "draft", "final", "archived"},
			DateFields:       []string{"created_at"},
			SearchableFields: []string{"report_name", "report_type", "generated_by"},
			DefaultSort:      rv.SortState{Key: "created_at", Direction: rv.Descending},
			Fixtures:         reportFixtures(),
		},
		{
			Name:       EntityCertifications,
			Label:      "Certifications",
			LabelField: "certification_name",
			StatusGroups: map[string][]string{
				"current": {"valid", "expiring-soon"},
			},
			StatusTabs:       []string{rv.StatusAll, "current", "expired", "pending"},
			DateFields:       []string{"updated_at", "issue_date"},
			SearchableFields: []string{"certification_name", "issuing_body", "farm_name"},
			DefaultSort:      rv.SortState{Key: "expiry_date", Direction: rv.Ascending},
			Fixtures:         certificationFixtures(),
		},
		{
			Name:             EntityInventory,
			Label:            "Inventory",
			LabelField:       "item_name",
			StatusTabs:       []string{rv.StatusAll, "in-stock", "low-stock", "out-of-stock"},
			SearchableFields: []string{"item_name", "category", "location"},
			TenantField:      "company",
			DefaultSort:      newestFirst,
			Fixtures:         inventoryFixtures(),
		},
		{
			Name:             EntityTasks,
			Label:            "Tasks",
			LabelField:       "title",
			StatusTabs:       []string{rv.StatusAll, "todo", "in-progress", "done"},
			DateFields:       []string{"updated_at", "due_date"},
			SearchableFields: []string{"title", "assignee", "priority"},
			DefaultSort:      rv.SortState{Key: "due_date", Direction: rv.Ascending},
			Fixtures:         taskFixtures(),
		},
		{
			Name:             EntityLoans,
			Label:            "Loans",
			LabelField:       "borrower",
			StatusTabs:       []string{rv.StatusAll, "active", "pending", "repaid", "defaulted"},
			DateFields:       []string{"issued_at", "updated_at"},
			SearchableFields: []string{"borrower", "purpose"},
			DefaultSort:      rv.SortState{Key: "issued_at", Direction: rv.Descending},
			Fixtures:         loanFixtures(),
		},
		{
			Name:             EntityPayroll,
			Label:            "Payroll",
			LabelField:       "employee_name",
			StatusTabs:       []string{rv.StatusAll, "paid", "pending"},
			SearchableFields: []string{"employee_name", "department", "pay_period"},
			ExportColumns:    []string{"id", "employee_name", "department", "pay_period", "gross_pay", "net_pay", "status", "updated_at"},
			PDFExclude:       []string{"gross_pay"},
			TenantField:      "company",
			DefaultSort:      rv.SortState{Key: "employee_name", Direction: rv.Ascending},
			Fixtures:         payrollFixtures(),
		},
	}

	for i := range entities {
		entities[i] = entities[i].WithDefaults()
	}
	return entities
}
