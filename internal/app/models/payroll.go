package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComponentKind distinguishes earnings from deductions in a salary structure
type ComponentKind string

const (
	ComponentEarning   ComponentKind = "earning"
	ComponentDeduction ComponentKind = "deduction"
)

// SalaryComponent is one line of a salary structure. Amount is used when
// Formula is empty; otherwise Formula is evaluated against {basic, gross}.
type SalaryComponent struct {
	Name    string        `bson:"name" json:"name" example:"HRA"`
	Kind    ComponentKind `bson:"kind" json:"kind" example:"earning"`
	Amount  float64       `bson:"amount,omitempty" json:"amount,omitempty"`
	Formula string        `bson:"formula,omitempty" json:"formula,omitempty" example:"basic * 0.4"`
}

// SalaryStructure is the per-employee pay definition payslips are computed from
type SalaryStructure struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Basic      float64            `bson:"basic" json:"basic"`
	Components []SalaryComponent  `bson:"components,omitempty" json:"components,omitempty"`
	EffectiveFrom time.Time       `bson:"effectiveFrom" json:"effectiveFrom"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PayslipLine is a resolved component value on a generated payslip
type PayslipLine struct {
	Name   string  `bson:"name" json:"name"`
	Amount float64 `bson:"amount" json:"amount"`
}

// Payslip is a point-in-time computed snapshot; it is never recalculated
// after generation even if the salary structure changes.
type Payslip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID  primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Month       string             `bson:"month" json:"month" example:"02-2025"`
	Basic       float64            `bson:"basic" json:"basic"`
	Earnings    []PayslipLine      `bson:"earnings,omitempty" json:"earnings,omitempty"`
	Deductions  []PayslipLine      `bson:"deductions,omitempty" json:"deductions,omitempty"`
	Gross       float64            `bson:"gross" json:"gross"`
	TotalDeduct float64            `bson:"totalDeduct" json:"totalDeduct"`
	Net         float64            `bson:"net" json:"net"`
	GeneratedAt time.Time          `bson:"generatedAt" json:"generatedAt"`
}

// EmployeeProfile carries HR details for an employee user
type EmployeeProfile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	EmployeeNo  string             `bson:"employeeNo" json:"employeeNo" example:"EMP-0042"`
	Designation string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Department  string             `bson:"department,omitempty" json:"department,omitempty"`
	JoinedAt    *time.Time         `bson:"joinedAt,omitempty" json:"joinedAt,omitempty"`
	BankAccount string             `bson:"bankAccount,omitempty" json:"bankAccount,omitempty"`
	PAN         string             `bson:"pan,omitempty" json:"pan,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
