package dto

// CreateCourseRequest creates a catalog course
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`
	Fee         float64 `json:"fee" binding:"min=0"`
	Active      *bool   `json:"active"`
}

// CreateInternshipRequest creates a catalog internship
type CreateInternshipRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Domain      string  `json:"domain"`
	Duration    string  `json:"duration"`
	Stipend     float64 `json:"stipend" binding:"min=0"`
	Fee         float64 `json:"fee" binding:"min=0"`
	Active      *bool   `json:"active"`
}

// CreateProjectRequest creates a catalog project
type CreateProjectRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	Price        float64  `json:"price" binding:"min=0"`
	AdvancePct   int      `json:"advancePct" binding:"omitempty,min=0,max=100"`
	DemoVideoURL string   `json:"demoVideoUrl"`
	Active       *bool    `json:"active"`
}

// ListFilter carries the common list query parameters
type ListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"activeOnly"`
	Page       int    `form:"page"`
	Size       int    `form:"size"`
}
