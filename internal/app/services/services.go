package services

// Services defined in this package:
// - AuthService: authentication, registration, invites and password flows
// - UserService: admin-side account management
// - AssignmentService: the student assignment workflow
// - SubmissionService: project submissions and review
// - CatalogService: courses, internships and projects
// - CareerService: job postings, offers, announcements, contact form
// - PayrollService: salary structures and payslips
// - DashboardService: admin dashboard aggregation
// - FileService: object storage uploads and download links
// - ReportService: tabular exports
