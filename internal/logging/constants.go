package logging

// Field names shared by every log entry so output can be filtered
// consistently.
const (
	FieldSource     = "source"
	FieldCollection = "collection"
	FieldCount      = "count"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldFile       = "file_path"
	FieldFormat     = "format"
	FieldDriver     = "driver"
	FieldSortField  = "sort_field"
	FieldDirection  = "direction"
	FieldChart      = "chart"
	FieldCategoryID = "category_id"
	FieldMonth      = "month"
	FieldUnresolved = "unresolved_ids"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)
