package models

// DashboardStats aggregates headline counts for the admin dashboard.
type DashboardStats struct {
	Students      int `json:"students"`
	Staff         int `json:"staff"`
	Courses       int `json:"courses"`
	Subjects      int `json:"subjects"`
	PendingLeaves int `json:"pending_leaves"`
}
