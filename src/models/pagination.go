package models

import "strings"

const (
	DefaultFormsLimit     = 20
	MaxFormsLimit         = 100
	DefaultResponsesLimit = 50
	MaxResponsesLimit     = 500
)

// FormListParams ตัวกรองสำหรับรายการฟอร์มของเจ้าของ
type FormListParams struct {
	Limit  int    `json:"limit" query:"limit" example:"20"`      // จำนวนรายการสูงสุด
	Search string `json:"search" query:"search" example:""`      // ค้นหาจากชื่อฟอร์ม (Optional)
	Status string `json:"status" query:"status" example:"draft"` // draft / published / archived / all
}

// DefaultFormListParams ค่าตั้งต้นสำหรับการ list ฟอร์ม
func DefaultFormListParams() FormListParams {
	return FormListParams{
		Limit:  DefaultFormsLimit,
		Search: "",
		Status: "",
	}
}

// Normalize clamps the limit and drops unknown status filters.
func (p FormListParams) Normalize() FormListParams {
	p.Limit = ClampLimit(p.Limit, DefaultFormsLimit, MaxFormsLimit)
	p.Search = strings.TrimSpace(p.Search)
	if !FormStatus(p.Status).Valid() {
		p.Status = ""
	}
	return p
}

// ClampLimit falls back to def for non-positive values and caps at max.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
