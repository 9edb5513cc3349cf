package dto

import "github.com/edupro/talentdesk/internal/app/models"

// UpsertSalaryStructureRequest sets an employee's salary definition
type UpsertSalaryStructureRequest struct {
	EmployeeID string                   `json:"employeeId" binding:"required"`
	Basic      float64                  `json:"basic" binding:"required,gt=0"`
	Components []models.SalaryComponent `json:"components"`
}

// GeneratePayslipRequest computes a payslip snapshot for a month
type GeneratePayslipRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Month      string `json:"month" binding:"required"` // MM-YYYY
}

// CreateEmployeeProfileRequest creates HR details for an employee user
type CreateEmployeeProfileRequest struct {
	UserID      string `json:"userId" binding:"required"`
	EmployeeNo  string `json:"employeeNo" binding:"required"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	JoinedAt    string `json:"joinedAt"` // YYYY-MM-DD
	BankAccount string `json:"bankAccount"`
	PAN         string `json:"pan"`
}

// InvoiceRequest builds an invoice PDF for a recorded payment
type InvoiceRequest struct {
	InvoiceNo    string  `json:"invoiceNo" binding:"required"`
	BilledTo     string  `json:"billedTo" binding:"required"`
	Email        string  `json:"email" binding:"omitempty,email"`
	Description  string  `json:"description" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"` // GST-inclusive total
}
