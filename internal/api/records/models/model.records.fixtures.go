package models

import (
	rv "agri_holding/internal/recordview"
)

func farmFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "farm-001", "farm_name", "Kanoni Coffee Farm", "location", "Kazo", "crop_type", "Coffee", "size_acres", int64(120), "owner_name", "Muheesi Holdings", "status", "active", "company", "kashari", "created_at", "2024-02-11T09:00:00Z", "updated_at", "2026-09-28T14:20:00Z"),
		rv.NewRecord("id", "farm-002", "farm_name", "Bwera Dairy Paddock", "location", "Kasese", "crop_type", "Pasture", "size_acres", int64(85), "owner_name", "Bwera Dairy Ltd", "status", "active", "company", "bwera", "created_at", "2024-05-03T10:30:00Z", "updated_at", "2026-09-15T08:05:00Z"),
		rv.NewRecord("id", "farm-003", "farm_name", "Kyenjojo Tea Estate", "location", "Kyenjojo", "crop_type", "Tea", "size_acres", int64(60), "owner_name", "Kyenjojo Farmers", "status", "pending", "company", "kyenjojo", "created_at", "2025-01-20T07:45:00Z", "updated_at", "2026-08-02T16:40:00Z"),
		rv.NewRecord("id", "farm-004", "farm_name", "Rwentobo Banana Plot", "location", "Ntungamo", "crop_type", "Banana", "size_acres", int64(12), "owner_name", "Muheesi Holdings", "status", "inactive", "company", "kashari", "created_at", "2023-11-08T11:00:00Z", "updated_at", "2026-03-19T12:00:00Z"),
	}
}

func scheduleFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "sch-001", "title", "Coffee pruning", "activity_type", "Pruning", "farm_name", "Kanoni Coffee Farm", "scheduled_date", "2026-10-20", "assigned_to", "Field team A", "status", "scheduled", "updated_at", "2026-10-01T09:00:00Z"),
		rv.NewRecord("id", "sch-002", "title", "Herd vaccination", "activity_type", "Veterinary", "farm_name", "Bwera Dairy Paddock", "scheduled_date", "2026-10-05", "assigned_to", "Dr. Kato", "status", "completed", "updated_at", "2026-10-05T15:30:00Z"),
		rv.NewRecord("id", "sch-003", "title", "Soil sampling", "activity_type", "Testing", "farm_name", "Kyenjojo Tea Estate", "scheduled_date", "2026-09-25", "assigned_to", "Agronomy unit", "status", "overdue", "updated_at", "2026-09-26T08:00:00Z"),
	}
}

func reportFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "rep-001", "report_name", "Q3 Coffee Yield", "report_type", "Production", "period", "2026-Q3", "generated_by", "Kashari office", "status", "final", "created_at", "2026-10-02T10:00:00Z"),
		rv.NewRecord("id", "rep-002", "report_name", "September Milk Collection", "report_type", "Dairy", "period", "2026-09", "generated_by", "Bwera office", "status", "draft", "created_at", "2026-10-08T13:15:00Z"),
		rv.NewRecord("id", "rep-003", "report_name", "Annual Audit 2025", "report_type", "Finance", "period", "2025", "generated_by", "Head office", "status", "archived", "created_at", "2026-02-14T09:30:00Z"),
	}
}

func certificationFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "cert-001", "certification_name", "Rainforest Alliance", "issuing_body", "Rainforest Alliance", "farm_name", "Kanoni Coffee Farm", "issue_date", "2024-06-01", "expiry_date", "2027-06-01", "status", "valid", "updated_at", "2026-06-10T08:00:00Z"),
		rv.NewRecord("id", "cert-002", "certification_name", "UTZ Certified", "issuing_body", "UTZ", "farm_name", "Kyenjojo Tea Estate", "issue_date", "2023-11-15", "expiry_date", "2026-11-15", "status", "expiring-soon", "updated_at", "2026-09-30T08:00:00Z"),
		rv.NewRecord("id", "cert-003", "certification_name", "Organic EU", "issuing_body", "Control Union", "farm_name", "Rwentobo Banana Plot", "issue_date", "2022-03-01", "expiry_date", "2025-03-01", "status", "expired", "updated_at", "2025-03-02T08:00:00Z"),
		rv.NewRecord("id", "cert-004", "certification_name", "Dairy Hygiene", "issuing_body", "Dairy Development Authority", "farm_name", "Bwera Dairy Paddock", "issue_date", "", "expiry_date", "", "status", "pending", "updated_at", "2026-10-11T08:00:00Z"),
	}
}

func inventoryFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "inv-001", "item_name", "Parchment coffee", "category", "Produce", "quantity", int64(3200), "unit", "kg", "location", "Kazo store", "status", "in-stock", "company", "kashari", "updated_at", "2026-10-09T17:00:00Z"),
		rv.NewRecord("id", "inv-002", "item_name", "Fresh milk cans", "category", "Equipment", "quantity", int64(14), "unit", "pcs", "location", "Bwera cooler", "status", "low-stock", "company", "bwera", "updated_at", "2026-10-12T06:30:00Z"),
		rv.NewRecord("id", "inv-003", "item_name", "NPK fertilizer", "category", "Inputs", "quantity", int64(0), "unit", "bags", "location", "Kyenjojo store", "status", "out-of-stock", "company", "kyenjojo", "updated_at", "2026-09-21T11:45:00Z"),
	}
}

func taskFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "task-001", "title", "Repair drying racks", "assignee", "Okello", "priority", "high", "due_date", "2026-10-18", "status", "in-progress", "updated_at", "2026-10-13T10:00:00Z"),
		rv.NewRecord("id", "task-002", "title", "Order veterinary supplies", "assignee", "Namara", "priority", "medium", "due_date", "2026-10-25", "status", "todo", "updated_at", "2026-10-10T09:00:00Z"),
		rv.NewRecord("id", "task-003", "title", "Submit cooperative levy", "assignee", "Tumusiime", "priority", "low", "due_date", "2026-09-30", "status", "done", "updated_at", "2026-09-29T15:00:00Z"),
	}
}

func loanFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "loan-001", "borrower", "Kashari Coffee Cooperative", "purpose", "Pulping machine", "amount", 45000000.0, "interest_rate", 14.5, "term_months", int64(24), "issued_at", "2026-01-15", "status", "active", "updated_at", "2026-09-01T08:00:00Z"),
		rv.NewRecord("id", "loan-002", "borrower", "Bwera Milk Collectors", "purpose", "Cooling tank", "amount", 18000000.0, "interest_rate", 12.0, "term_months", int64(12), "issued_at", "2025-05-10", "status", "repaid", "updated_at", "2026-05-10T08:00:00Z"),
		rv.NewRecord("id", "loan-003", "borrower", "Kyenjojo Outgrowers", "purpose", "Seedlings", "amount", 7500000.0, "interest_rate", 15.0, "term_months", int64(6), "issued_at", "2026-10-03", "status", "pending", "updated_at", "2026-10-03T08:00:00Z"),
	}
}

func payrollFixtures() []rv.Record {
	return []rv.Record{
		rv.NewRecord("id", "pay-001", "employee_name", "Grace Atuhaire", "department", "Agronomy", "pay_period", "2026-09", "gross_pay", 2400000.0, "net_pay", 1980000.0, "status", "paid", "company", "kashari", "updated_at", "2026-09-30T18:00:00Z"),
		rv.NewRecord("id", "pay-002", "employee_name", "Joseph Mugisha", "department", "Dairy", "pay_period", "2026-09", "gross_pay", 1800000.0, "net_pay", 1530000.0, "status", "paid", "company", "bwera", "updated_at", "2026-09-30T18:00:00Z"),
		rv.NewRecord("id", "pay-003", "employee_name", "Esther Kabasinguzi", "department", "Finance", "pay_period", "2026-10", "gross_pay", 3100000.0, "net_pay", 2480000.0, "status", "pending", "company", "muheesi", "updated_at", "2026-10-14T09:00:00Z"),
	}
}
