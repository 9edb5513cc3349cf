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

// CatalogFilter narrows catalog listings
type CatalogFilter struct {
	Search     string
	ActiveOnly bool
}

func (f CatalogFilter) query() bson.M {
	q := bson.M{}
	if f.Search != "" {
		q["name"] = bson.M{"$regex": primitive.Regex{Pattern: f.Search, Options: "i"}}
	}
	if f.ActiveOnly {
		q["active"] = true
	}
	return q
}

// ICatalogRepository defines persistence for courses, internships and projects
type ICatalogRepository interface {
	CreateCourse(ctx context.Context, c *models.Course) (primitive.ObjectID, error)
	GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	UpdateCourse(ctx context.Context, c *models.Course) error
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
	ListCourses(ctx context.Context, filter CatalogFilter, skip, limit int64) ([]models.Course, int64, error)

	CreateInternship(ctx context.Context, i *models.Internship) (primitive.ObjectID, error)
	GetInternship(ctx context.Context, id primitive.ObjectID) (*models.Internship, error)
	UpdateInternship(ctx context.Context, i *models.Internship) error
	DeleteInternship(ctx context.Context, id primitive.ObjectID) error
	ListInternships(ctx context.Context, filter CatalogFilter, skip, limit int64) ([]models.Internship, int64, error)

	CreateProject(ctx context.Context, p *models.Project) (primitive.ObjectID, error)
	GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	ListProjects(ctx context.Context, filter CatalogFilter, skip, limit int64) ([]models.Project, int64, error)

	CountCatalog(ctx context.Context, from, to *time.Time) (courses, internships, projects int64, err error)
}

// CatalogRepository persists the course, internship and project catalog
type CatalogRepository struct {
	courses     *mongo.Collection
	internships *mongo.Collection
	projects    *mongo.Collection
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		courses:     db.Collection("courses"),
		internships: db.Collection("internships"),
		projects:    db.Collection("projects"),
	}
}

func listOpts(skip, limit int64) *options.FindOptions {
	return options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func insertCatalogDoc(ctx context.Context, coll *mongo.Collection, doc interface{}) (primitive.ObjectID, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, apperrors.ErrNameAlreadyExists
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// CreateCourse inserts a new course
func (r *CatalogRepository) CreateCourse(ctx context.Context, c *models.Course) (primitive.ObjectID, error) {
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	id, err := insertCatalogDoc(ctx, r.courses, c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	c.ID = id
	return id, nil
}

// GetCourse fetches a course by id
func (r *CatalogRepository) GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var c models.Course
	if err := r.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateCourse replaces a course document
func (r *CatalogRepository) UpdateCourse(ctx context.Context, c *models.Course) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.courses.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrNameAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes a course
func (r *CatalogRepository) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.courses.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListCourses pages courses matching the filter
func (r *CatalogRepository) ListCourses(ctx context.Context, filter CatalogFilter, skip, limit int64) ([]models.Course, int64, error) {
	q := filter.query()
	total, err := r.courses.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.courses.Find(ctx, q, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// CreateInternship inserts a new internship
func (r *CatalogRepository) CreateInternship(ctx context.Context, i *models.Internship) (primitive.ObjectID, error) {
	i.CreatedAt = time.Now().UTC()
	i.UpdatedAt = i.CreatedAt
	id, err := insertCatalogDoc(ctx, r.internships, i)
	if err != nil {
		return primitive.NilObjectID, err
	}
	i.ID = id
	return id, nil
}

// GetInternship fetches an internship by id
func (r *CatalogRepository) GetInternship(ctx context.Context, id primitive.ObjectID) (*models.Internship, error) {
	var i models.Internship
	if err := r.internships.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrInternshipNotFound
		}
		return nil, err
	}
	return &i, nil
}

// UpdateInternship replaces an internship document
func (r *CatalogRepository) UpdateInternship(ctx context.Context, i *models.Internship) error {
	i.UpdatedAt = time.Now().UTC()
	res, err := r.internships.ReplaceOne(ctx, bson.M{"_id": i.ID}, i)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrNameAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// DeleteInternship removes an internship
func (r *CatalogRepository) DeleteInternship(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.internships.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// ListInternships pages internships matching the filter
func (r *CatalogRepository) ListInternships(ctx context.Context, filter CatalogFilter, skip, limit int64) ([]models.Internship, int64, error) {
	q := filter.query()
	total, err := r.internships.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.internships.Find(ctx, q, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	internships := []models.Internship{}
	if err := cursor.All(ctx, &internships); err != nil {
		return nil, 0, err
	}
	return internships, total, nil
}

// CreateProject inserts a new project
func (r *CatalogRepository) CreateProject(ctx context.Context, p *models.Project) (primitive.ObjectID, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	id, err := insertCatalogDoc(ctx, r.projects, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	p.ID = id
	return id, nil
}

// GetProject fetches a project by id
func (r *CatalogRepository) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProject replaces a project document
func (r *CatalogRepository) UpdateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.projects.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrNameAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// DeleteProject removes a project
func (r *CatalogRepository) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// ListProjects pages projects matching the filter
func (r *CatalogRepository) ListProjects(ctx context.Context, filter CatalogFilter, skip, limit int64) ([]models.Project, int64, error) {
	q := filter.query()
	total, err := r.projects.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.projects.Find(ctx, q, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// CountCatalog totals each catalog collection, optionally created inside [from, to)
func (r *CatalogRepository) CountCatalog(ctx context.Context, from, to *time.Time) (courses, internships, projects int64, err error) {
	filter := bson.M{}
	if from != nil && to != nil {
		filter["createdAt"] = bson.M{"$gte": *from, "$lt": *to}
	}
	if courses, err = r.courses.CountDocuments(ctx, filter); err != nil {
		return
	}
	if internships, err = r.internships.CountDocuments(ctx, filter); err != nil {
		return
	}
	projects, err = r.projects.CountDocuments(ctx, filter)
	return
}
