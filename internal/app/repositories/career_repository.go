package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// ICareerRepository defines persistence for job postings, offers,
// announcements and contact inquiries
type ICareerRepository interface {
	CreateCareer(ctx context.Context, c *models.Career) (primitive.ObjectID, error)
	GetCareer(ctx context.Context, id primitive.ObjectID) (*models.Career, error)
	UpdateCareer(ctx context.Context, c *models.Career) error
	DeleteCareer(ctx context.Context, id primitive.ObjectID) error
	ListCareers(ctx context.Context, activeOnly bool, skip, limit int64) ([]models.Career, int64, error)

	CreateOffer(ctx context.Context, o *models.Offer) (primitive.ObjectID, error)
	GetOffer(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	UpdateOfferStatus(ctx context.Context, id primitive.ObjectID, status models.OfferStatus) error
	ListOffers(ctx context.Context, skip, limit int64) ([]models.Offer, int64, error)

	CreateAnnouncement(ctx context.Context, a *models.Announcement) (primitive.ObjectID, error)
	GetAnnouncement(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error
	ListAnnouncements(ctx context.Context, audience models.Role, skip, limit int64) ([]models.Announcement, int64, error)

	CreateInquiry(ctx context.Context, i *models.ContactInquiry) (primitive.ObjectID, error)
	ListInquiries(ctx context.Context, skip, limit int64) ([]models.ContactInquiry, int64, error)

	CountCareers(ctx context.Context, from, to *time.Time) (int64, error)
	CountInquiries(ctx context.Context, from, to *time.Time) (int64, error)
	CountAnnouncements(ctx context.Context, from, to *time.Time) (int64, error)
}

// CareerRepository persists hiring and outreach records
type CareerRepository struct {
	careers       *mongo.Collection
	offers        *mongo.Collection
	announcements *mongo.Collection
	inquiries     *mongo.Collection
}

// NewCareerRepository creates a new CareerRepository
func NewCareerRepository(db *mongo.Database) *CareerRepository {
	return &CareerRepository{
		careers:       db.Collection("careers"),
		offers:        db.Collection("offers"),
		announcements: db.Collection("announcements"),
		inquiries:     db.Collection("contact_inquiries"),
	}
}

// CreateCareer inserts a new job posting
func (r *CareerRepository) CreateCareer(ctx context.Context, c *models.Career) (primitive.ObjectID, error) {
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	res, err := r.careers.InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return c.ID, nil
}

// GetCareer fetches a job posting by id
func (r *CareerRepository) GetCareer(ctx context.Context, id primitive.ObjectID) (*models.Career, error) {
	var c models.Career
	if err := r.careers.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCareerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateCareer replaces a job posting
func (r *CareerRepository) UpdateCareer(ctx context.Context, c *models.Career) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.careers.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrCareerNotFound
	}
	return nil
}

// DeleteCareer removes a job posting
func (r *CareerRepository) DeleteCareer(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.careers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrCareerNotFound
	}
	return nil
}

// ListCareers pages job postings
func (r *CareerRepository) ListCareers(ctx context.Context, activeOnly bool, skip, limit int64) ([]models.Career, int64, error) {
	q := bson.M{}
	if activeOnly {
		q["active"] = true
	}
	total, err := r.careers.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.careers.Find(ctx, q, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	careers := []models.Career{}
	if err := cursor.All(ctx, &careers); err != nil {
		return nil, 0, err
	}
	return careers, total, nil
}

// CreateOffer inserts a new offer letter record
func (r *CareerRepository) CreateOffer(ctx context.Context, o *models.Offer) (primitive.ObjectID, error) {
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	res, err := r.offers.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return o.ID, nil
}

// GetOffer fetches an offer by id
func (r *CareerRepository) GetOffer(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	var o models.Offer
	if err := r.offers.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewResourceNotFoundError("offer not found")
		}
		return nil, err
	}
	return &o, nil
}

// UpdateOfferStatus moves an offer through its lifecycle
func (r *CareerRepository) UpdateOfferStatus(ctx context.Context, id primitive.ObjectID, status models.OfferStatus) error {
	res, err := r.offers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NewResourceNotFoundError("offer not found")
	}
	return nil
}

// ListOffers pages offer records
func (r *CareerRepository) ListOffers(ctx context.Context, skip, limit int64) ([]models.Offer, int64, error) {
	total, err := r.offers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.offers.Find(ctx, bson.M{}, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// CreateAnnouncement inserts a new announcement
func (r *CareerRepository) CreateAnnouncement(ctx context.Context, a *models.Announcement) (primitive.ObjectID, error) {
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	res, err := r.announcements.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return a.ID, nil
}

// GetAnnouncement fetches an announcement by id
func (r *CareerRepository) GetAnnouncement(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.announcements.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateAnnouncement replaces an announcement
func (r *CareerRepository) UpdateAnnouncement(ctx context.Context, a *models.Announcement) error {
	a.UpdatedAt = time.Now().UTC()
	res, err := r.announcements.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// DeleteAnnouncement removes an announcement
func (r *CareerRepository) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.announcements.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// ListAnnouncements pages active announcements visible to a role.
// An announcement with no audience is visible to everyone.
func (r *CareerRepository) ListAnnouncements(ctx context.Context, audience models.Role, skip, limit int64) ([]models.Announcement, int64, error) {
	q := bson.M{"active": true}
	if audience != "" {
		q["$or"] = bson.A{
			bson.M{"audience": bson.M{"$exists": false}},
			bson.M{"audience": bson.M{"$size": 0}},
			bson.M{"audience": audience},
		}
	}
	total, err := r.announcements.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.announcements.Find(ctx, q, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	anns := []models.Announcement{}
	if err := cursor.All(ctx, &anns); err != nil {
		return nil, 0, err
	}
	return anns, total, nil
}

// CreateInquiry records a public contact form submission
func (r *CareerRepository) CreateInquiry(ctx context.Context, i *models.ContactInquiry) (primitive.ObjectID, error) {
	i.CreatedAt = time.Now().UTC()
	res, err := r.inquiries.InsertOne(ctx, i)
	if err != nil {
		return primitive.NilObjectID, err
	}
	i.ID = res.InsertedID.(primitive.ObjectID)
	return i.ID, nil
}

// ListInquiries pages contact inquiries newest first
func (r *CareerRepository) ListInquiries(ctx context.Context, skip, limit int64) ([]models.ContactInquiry, int64, error) {
	total, err := r.inquiries.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.inquiries.Find(ctx, bson.M{}, listOpts(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	inquiries := []models.ContactInquiry{}
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

func countInRange(ctx context.Context, coll *mongo.Collection, from, to *time.Time) (int64, error) {
	filter := bson.M{}
	if from != nil && to != nil {
		filter["createdAt"] = bson.M{"$gte": *from, "$lt": *to}
	}
	return coll.CountDocuments(ctx, filter)
}

// CountCareers totals job postings, optionally created inside [from, to)
func (r *CareerRepository) CountCareers(ctx context.Context, from, to *time.Time) (int64, error) {
	return countInRange(ctx, r.careers, from, to)
}

// CountInquiries totals contact inquiries, optionally created inside [from, to)
func (r *CareerRepository) CountInquiries(ctx context.Context, from, to *time.Time) (int64, error) {
	return countInRange(ctx, r.inquiries, from, to)
}

// CountAnnouncements totals announcements, optionally created inside [from, to)
func (r *CareerRepository) CountAnnouncements(ctx context.Context, from, to *time.Time) (int64, error) {
	return countInRange(ctx, r.announcements, from, to)
}
