package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
)

// CatalogService manages the course, internship and project catalog
type CatalogService struct {
	catalogRepo repositories.ICatalogRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(catalogRepo repositories.ICatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo, logger: logger}
}

// CreateCourse adds a course to the catalog
func (s *CatalogService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Duration:    req.Duration,
		Fee:         req.Fee,
		Active:      true,
	}
	if _, err := s.catalogRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Str("courseId", course.ID.Hex()).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// GetCourse fetches one course
func (s *CatalogService) GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return s.catalogRepo.GetCourse(ctx, id)
}

// UpdateCourse applies edits to a course
func (s *CatalogService) UpdateCourse(ctx context.Context, id primitive.ObjectID, req dto.CreateCourseRequest, active bool) (*models.Course, error) {
	course, err := s.catalogRepo.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Description = req.Description
	course.Category = req.Category
	course.Duration = req.Duration
	course.Fee = req.Fee
	course.Active = active
	if err := s.catalogRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course
func (s *CatalogService) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	return s.catalogRepo.DeleteCourse(ctx, id)
}

// ListCourses pages the course catalog
func (s *CatalogService) ListCourses(ctx context.Context, filter repositories.CatalogFilter, skip, limit int64) ([]models.Course, int64, error) {
	return s.catalogRepo.ListCourses(ctx, filter, skip, limit)
}

// CreateInternship adds an internship to the catalog
func (s *CatalogService) CreateInternship(ctx context.Context, req dto.CreateInternshipRequest) (*models.Internship, error) {
	internship := &models.Internship{
		Name:        req.Name,
		Description: req.Description,
		Domain:      req.Domain,
		Duration:    req.Duration,
		Stipend:     req.Stipend,
		Fee:         req.Fee,
		Active:      true,
	}
	if _, err := s.catalogRepo.CreateInternship(ctx, internship); err != nil {
		return nil, err
	}
	s.logger.Info().Str("internshipId", internship.ID.Hex()).Str("name", internship.Name).Msg("Internship created")
	return internship, nil
}

// GetInternship fetches one internship
func (s *CatalogService) GetInternship(ctx context.Context, id primitive.ObjectID) (*models.Internship, error) {
	return s.catalogRepo.GetInternship(ctx, id)
}

// UpdateInternship applies edits to an internship
func (s *CatalogService) UpdateInternship(ctx context.Context, id primitive.ObjectID, req dto.CreateInternshipRequest, active bool) (*models.Internship, error) {
	internship, err := s.catalogRepo.GetInternship(ctx, id)
	if err != nil {
		return nil, err
	}
	internship.Name = req.Name
	internship.Description = req.Description
	internship.Domain = req.Domain
	internship.Duration = req.Duration
	internship.Stipend = req.Stipend
	internship.Fee = req.Fee
	internship.Active = active
	if err := s.catalogRepo.UpdateInternship(ctx, internship); err != nil {
		return nil, err
	}
	return internship, nil
}

// DeleteInternship removes an internship
func (s *CatalogService) DeleteInternship(ctx context.Context, id primitive.ObjectID) error {
	return s.catalogRepo.DeleteInternship(ctx, id)
}

// ListInternships pages the internship catalog
func (s *CatalogService) ListInternships(ctx context.Context, filter repositories.CatalogFilter, skip, limit int64) ([]models.Internship, int64, error) {
	return s.catalogRepo.ListInternships(ctx, filter, skip, limit)
}

// CreateProject adds a project to the catalog
func (s *CatalogService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Technologies: req.Technologies,
		Price:        req.Price,
		AdvancePct:   req.AdvancePct,
		DemoVideoURL: req.DemoVideoURL,
		Active:       true,
	}
	if _, err := s.catalogRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info().Str("projectId", project.ID.Hex()).Str("name", project.Name).Msg("Project created")
	return project, nil
}

// GetProject fetches one project
func (s *CatalogService) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return s.catalogRepo.GetProject(ctx, id)
}

// UpdateProject applies edits to a project
func (s *CatalogService) UpdateProject(ctx context.Context, id primitive.ObjectID, req dto.CreateProjectRequest, active bool) (*models.Project, error) {
	project, err := s.catalogRepo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Name = req.Name
	project.Description = req.Description
	project.Category = req.Category
	project.Technologies = req.Technologies
	project.Price = req.Price
	project.AdvancePct = req.AdvancePct
	project.DemoVideoURL = req.DemoVideoURL
	project.Active = active
	if err := s.catalogRepo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project
func (s *CatalogService) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	return s.catalogRepo.DeleteProject(ctx, id)
}

// ListProjects pages the project catalog
func (s *CatalogService) ListProjects(ctx context.Context, filter repositories.CatalogFilter, skip, limit int64) ([]models.Project, int64, error) {
	return s.catalogRepo.ListProjects(ctx, filter, skip, limit)
}

// SetProjectThumbnail stores the object key of a project's thumbnail
func (s *CatalogService) SetProjectThumbnail(ctx context.Context, id primitive.ObjectID, key string) (*models.Project, error) {
	project, err := s.catalogRepo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.ThumbnailKey = key
	if err := s.catalogRepo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
