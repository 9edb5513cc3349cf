package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// CareerController handles job openings, offer letters, announcements
// and the public contact form
type CareerController struct {
	careerService *services.CareerService
}

// NewCareerController creates a new CareerController
func NewCareerController(careerService *services.CareerService) *CareerController {
	return &CareerController{careerService: careerService}
}

// CreateCareer publishes a job opening
// @Summary Create a career opening
// @Tags careers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCareerRequest true "Opening details"
// @Success 201 {object} dto.APIResponse{data=models.Career} "Career created"
// @Router /careers [post]
func (c *CareerController) CreateCareer(ctx *gin.Context) {
	var req dto.CreateCareerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	career, err := c.careerService.CreateCareer(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(career, "Career created"))
}

// GetCareer fetches one opening
// @Summary Get a career opening
// @Tags careers
// @Produce json
// @Param id path string true "Career ID"
// @Success 200 {object} dto.APIResponse{data=models.Career} "Career"
// @Failure 404 {object} dto.ErrorResponse "Career not found"
// @Router /careers/{id} [get]
func (c *CareerController) GetCareer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	career, err := c.careerService.GetCareer(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(career, ""))
}

// UpdateCareer replaces an opening's details
// @Summary Update a career opening
// @Tags careers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Career ID"
// @Param request body dto.CreateCareerRequest true "Opening details"
// @Success 200 {object} dto.APIResponse{data=models.Career} "Career updated"
// @Failure 404 {object} dto.ErrorResponse "Career not found"
// @Router /careers/{id} [put]
func (c *CareerController) UpdateCareer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateCareerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	career, err := c.careerService.UpdateCareer(ctx, id, req, activeOrDefault(req.Active))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(career, "Career updated"))
}

// DeleteCareer removes an opening
// @Summary Delete a career opening
// @Tags careers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Career ID"
// @Success 200 {object} dto.APIResponse "Career deleted"
// @Failure 404 {object} dto.ErrorResponse "Career not found"
// @Router /careers/{id} [delete]
func (c *CareerController) DeleteCareer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.careerService.DeleteCareer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Career deleted"))
}

// ListCareers pages openings; the public listing shows active ones only
// @Summary List career openings
// @Tags careers
// @Produce json
// @Param activeOnly query bool false "Only active openings"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Careers"
// @Router /careers [get]
func (c *CareerController) ListCareers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	careers, total, err := c.careerService.ListCareers(ctx, ctx.Query("activeOnly") == "true", skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      careers,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// CreateOffer drafts an offer letter
// @Summary Create an offer
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferRequest true "Offer details"
// @Success 201 {object} dto.APIResponse{data=models.Offer} "Offer created"
// @Failure 404 {object} dto.ErrorResponse "Linked career not found"
// @Router /offers [post]
func (c *CareerController) CreateOffer(ctx *gin.Context) {
	var req dto.CreateOfferRequest
	if !bindJSON(ctx, &req) {
		return
	}
	offer, err := c.careerService.CreateOffer(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(offer, "Offer created"))
}

// GetOffer fetches one offer
// @Summary Get an offer
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {object} dto.APIResponse{data=models.Offer} "Offer"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Router /offers/{id} [get]
func (c *CareerController) GetOffer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offer, err := c.careerService.GetOffer(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(offer, ""))
}

// SendOffer emails a drafted offer to the candidate
// @Summary Send an offer
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {object} dto.APIResponse{data=models.Offer} "Offer sent"
// @Failure 409 {object} dto.ErrorResponse "Offer is not a draft"
// @Router /offers/{id}/send [post]
func (c *CareerController) SendOffer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offer, err := c.careerService.SendOffer(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(offer, "Offer sent"))
}

// UpdateOfferStatus records the candidate's response
// @Summary Update offer status
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body dto.UpdateOfferStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Offer} "Offer updated"
// @Failure 409 {object} dto.ErrorResponse "Offer was never sent"
// @Router /offers/{id}/status [patch]
func (c *CareerController) UpdateOfferStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateOfferStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	offer, err := c.careerService.UpdateOfferStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(offer, "Offer updated"))
}

// ListOffers pages offers
// @Summary List offers
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Offers"
// @Router /offers [get]
func (c *CareerController) ListOffers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	offers, total, err := c.careerService.ListOffers(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      offers,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// OfferLetter streams the offer letter as a PDF
// @Summary Download an offer letter
// @Tags offers
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {file} binary "Offer letter PDF"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Router /offers/{id}/letter [get]
func (c *CareerController) OfferLetter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offer, err := c.careerService.GetOffer(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var buf bytes.Buffer
	data := docgen.OfferData{
		CandidateName: offer.CandidateName,
		Position:      offer.Position,
		CTC:           offer.CTC,
		JoiningDate:   offer.JoiningDate,
		Date:          time.Now(),
	}
	if err := docgen.WriteOfferPDF(&buf, data); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="offer-`+offer.ID.Hex()+`.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// CreateAnnouncement publishes an announcement
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement details"
// @Success 201 {object} dto.APIResponse{data=models.Announcement} "Announcement created"
// @Router /announcements [post]
func (c *CareerController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !bindJSON(ctx, &req) {
		return
	}
	announcement, err := c.careerService.CreateAnnouncement(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(announcement, "Announcement created"))
}

// UpdateAnnouncement replaces an announcement
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Param request body dto.CreateAnnouncementRequest true "Announcement details"
// @Success 200 {object} dto.APIResponse{data=models.Announcement} "Announcement updated"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [put]
func (c *CareerController) UpdateAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateAnnouncementRequest
	if !bindJSON(ctx, &req) {
		return
	}
	announcement, err := c.careerService.UpdateAnnouncement(ctx, id, req, activeOrDefault(req.Active))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(announcement, "Announcement updated"))
}

// DeleteAnnouncement removes an announcement
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} dto.APIResponse "Announcement deleted"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [delete]
func (c *CareerController) DeleteAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.careerService.DeleteAnnouncement(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Announcement deleted"))
}

// ListAnnouncements pages active announcements visible to the caller's role
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Announcements"
// @Router /announcements [get]
func (c *CareerController) ListAnnouncements(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	var audience models.Role
	if role := middleware.CurrentRole(ctx); role != models.RoleAdmin {
		audience = role
	}
	announcements, total, err := c.careerService.ListAnnouncements(ctx, audience, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      announcements,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// SubmitContact stores a public contact form message
// @Summary Submit a contact inquiry
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Inquiry details"
// @Success 201 {object} dto.APIResponse{data=models.ContactInquiry} "Inquiry received"
// @Router /contact [post]
func (c *CareerController) SubmitContact(ctx *gin.Context) {
	var req dto.ContactRequest
	if !bindJSON(ctx, &req) {
		return
	}
	inquiry, err := c.careerService.SubmitContact(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(inquiry, "Inquiry received"))
}

// ListInquiries pages contact form messages for staff
// @Summary List contact inquiries
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Inquiries"
// @Router /contact [get]
func (c *CareerController) ListInquiries(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	inquiries, total, err := c.careerService.ListInquiries(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      inquiries,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
