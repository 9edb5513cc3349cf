package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// IPayrollRepository defines persistence for salary structures,
// payslips and employee profiles
type IPayrollRepository interface {
	UpsertSalaryStructure(ctx context.Context, s *models.SalaryStructure) error
	GetSalaryStructure(ctx context.Context, employeeID primitive.ObjectID) (*models.SalaryStructure, error)

	CreatePayslip(ctx context.Context, p *models.Payslip) (primitive.ObjectID, error)
	GetPayslip(ctx context.Context, id primitive.ObjectID) (*models.Payslip, error)
	GetPayslipForMonth(ctx context.Context, employeeID primitive.ObjectID, month string) (*models.Payslip, error)
	ListPayslips(ctx context.Context, employeeID primitive.ObjectID, skip, limit int64) ([]models.Payslip, int64, error)
	ListPayslipsForMonth(ctx context.Context, month string) ([]models.Payslip, error)

	CreateEmployeeProfile(ctx context.Context, p *models.EmployeeProfile) (primitive.ObjectID, error)
	GetEmployeeProfile(ctx context.Context, userID primitive.ObjectID) (*models.EmployeeProfile, error)
	ListEmployeeProfiles(ctx context.Context, skip, limit int64) ([]models.EmployeeProfile, int64, error)
}

// PayrollRepository persists payroll records
type PayrollRepository struct {
	structures *mongo.Collection
	payslips   *mongo.Collection
	profiles   *mongo.Collection
}

// NewPayrollRepository creates a new PayrollRepository
func NewPayrollRepository(db *mongo.Database) *PayrollRepository {
	return &PayrollRepository{
		structures: db.Collection("salary_structures"),
		payslips:   db.Collection("payslips"),
		profiles:   db.Collection("employee_profiles"),
	}
}

// UpsertSalaryStructure replaces the employee's current salary definition
func (r *PayrollRepository) UpsertSalaryStructure(ctx context.Context, s *models.SalaryStructure) error {
	now := time.Now().UTC()
	s.UpdatedAt = now
	update := bson.M{
		"$set": bson.M{
			"basic":         s.Basic,
			"components":    s.Components,
			"effectiveFrom": s.EffectiveFrom,
			"updatedAt":     now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.structures.UpdateOne(ctx, bson.M{"employeeId": s.EmployeeID}, update, opts)
	return err
}

// GetSalaryStructure fetches the employee's salary definition
func (r *PayrollRepository) GetSalaryStructure(ctx context.Context, employeeID primitive.ObjectID) (*models.SalaryStructure, error) {
	var s models.SalaryStructure
	err := r.structures.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrSalaryStructureNotFound
		}
		return nil, err
	}
	return &s, nil
}

// CreatePayslip inserts an immutable payslip snapshot. A unique index
// on (employeeId, month) guards against double generation.
func (r *PayrollRepository) CreatePayslip(ctx context.Context, p *models.Payslip) (primitive.ObjectID, error) {
	res, err := r.payslips.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, apperrors.ErrPayslipAlreadyExists
		}
		return primitive.NilObjectID, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p.ID, nil
}

// GetPayslip fetches a payslip by id
func (r *PayrollRepository) GetPayslip(ctx context.Context, id primitive.ObjectID) (*models.Payslip, error) {
	var p models.Payslip
	if err := r.payslips.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetPayslipForMonth fetches the payslip for one employee and month
func (r *PayrollRepository) GetPayslipForMonth(ctx context.Context, employeeID primitive.ObjectID, month string) (*models.Payslip, error) {
	var p models.Payslip
	err := r.payslips.FindOne(ctx, bson.M{"employeeId": employeeID, "month": month}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPayslips pages one employee's payslips
func (r *PayrollRepository) ListPayslips(ctx context.Context, employeeID primitive.ObjectID, skip, limit int64) ([]models.Payslip, int64, error) {
	q := bson.M{"employeeId": employeeID}
	total, err := r.payslips.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "generatedAt", Value: -1}})
	cursor, err := r.payslips.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	slips := []models.Payslip{}
	if err := cursor.All(ctx, &slips); err != nil {
		return nil, 0, err
	}
	return slips, total, nil
}

// ListPayslipsForMonth returns every payslip generated for a month
func (r *PayrollRepository) ListPayslipsForMonth(ctx context.Context, month string) ([]models.Payslip, error) {
	cursor, err := r.payslips.Find(ctx, bson.M{"month": month})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slips := []models.Payslip{}
	if err := cursor.All(ctx, &slips); err != nil {
		return nil, err
	}
	return slips, nil
}

// CreateEmployeeProfile inserts HR details for an employee user
func (r *PayrollRepository) CreateEmployeeProfile(ctx context.Context, p *models.EmployeeProfile) (primitive.ObjectID, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	res, err := r.profiles.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, apperrors.NewConflictError("employee profile already exists")
		}
		return primitive.NilObjectID, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p.ID, nil
}

// GetEmployeeProfile fetches the profile for a user
func (r *PayrollRepository) GetEmployeeProfile(ctx context.Context, userID primitive.ObjectID) (*models.EmployeeProfile, error) {
	var p models.EmployeeProfile
	err := r.profiles.FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListEmployeeProfiles pages employee profiles
func (r *PayrollRepository) ListEmployeeProfiles(ctx context.Context, skip, limit int64) ([]models.EmployeeProfile, int64, error) {
	total, err := r.profiles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.profiles.Find(ctx, bson.M{}, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	profiles := []models.EmployeeProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
