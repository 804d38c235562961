package dto

// AdminDashboardResponse aggregates platform-wide counts for the admin
// dashboard.
type AdminDashboardResponse struct {
	AccountsByStatus map[string]int64 `json:"accounts_by_status"`
	CampusCount      int64            `json:"campus_count"`
	OpportunityCount int64            `json:"opportunity_count"`
	OpenReportCount  int64            `json:"open_report_count"`
	CacheHit         bool             `json:"cache_hit,omitempty"`
}

// CampusDashboardResponse aggregates counts for one campus partition.
type CampusDashboardResponse struct {
	Campus                string           `json:"campus"`
	StudentsByStatus      map[string]int64 `json:"students_by_status"`
	OpportunitiesByStatus map[string]int64 `json:"opportunities_by_status"`
	ApplicationsByStatus  map[string]int64 `json:"applications_by_status"`
	CacheHit              bool             `json:"cache_hit,omitempty"`
}
