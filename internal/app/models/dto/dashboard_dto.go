package dto

// DashboardCounts aggregates entity totals for the admin dashboard.
// When a month filter is supplied the counts cover records created
// within that month only.
type DashboardCounts struct {
	Students      int64   `json:"students"`
	Employees     int64   `json:"employees"`
	Courses       int64   `json:"courses"`
	Internships   int64   `json:"internships"`
	Projects      int64   `json:"projects"`
	Assignments   int64   `json:"assignments"`
	Submissions   int64   `json:"submissions"`
	Careers       int64   `json:"careers"`
	Inquiries     int64   `json:"inquiries"`
	Announcements int64   `json:"announcements"`
	Revenue       float64 `json:"revenue"`
	Month         string  `json:"month,omitempty"`
}

// DashboardQuery filters dashboard aggregation by month (MM-YYYY).
type DashboardQuery struct {
	Month string `form:"month"`
}
