package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	AssignmentRepository *AssignmentRepository
	SubmissionRepository *SubmissionRepository
	CatalogRepository    *CatalogRepository
	CareerRepository     *CareerRepository
	PayrollRepository    *PayrollRepository
	OutboxRepository     *OutboxRepository
	DashboardRepository  *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
		SubmissionRepository: NewSubmissionRepository(db),
		CatalogRepository:    NewCatalogRepository(db),
		CareerRepository:     NewCareerRepository(db),
		PayrollRepository:    NewPayrollRepository(db),
		OutboxRepository:     NewOutboxRepository(db),
		DashboardRepository:  NewDashboardRepository(db),
	}
}
