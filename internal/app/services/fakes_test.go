package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, apperrors.ErrEmailAlreadyExists
		}
	}
	r.add(user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByInviteToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range r.users {
		if u.InviteToken == token && token != "" {
			return u, nil
		}
	}
	return nil, apperrors.ErrInviteTokenInvalid
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role models.Role, _, _ int64) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role models.Role, _, _ *time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeTokenRepo struct {
	refresh map[string]*models.RefreshToken
	reset   map[string]*models.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		refresh: make(map[string]*models.RefreshToken),
		reset:   make(map[string]*models.PasswordResetToken),
	}
}

func (r *fakeTokenRepo) SaveRefreshToken(_ context.Context, token *models.RefreshToken) error {
	r.refresh[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) GetRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := r.refresh[token]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTokenNotFound
}

func (r *fakeTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	t, ok := r.refresh[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.IsRevoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID primitive.ObjectID) error {
	for _, t := range r.refresh {
		if t.UserID == userID {
			t.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) SavePasswordResetToken(_ context.Context, token *models.PasswordResetToken) error {
	r.reset[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) GetPasswordResetToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	if t, ok := r.reset[token]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTokenNotFound
}

func (r *fakeTokenRepo) MarkPasswordResetTokenUsed(_ context.Context, token string) error {
	if t, ok := r.reset[token]; ok {
		t.Used = true
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) error { return nil }

type fakeOutboxRepo struct {
	notifications []models.Notification
}

func newFakeOutboxRepo() *fakeOutboxRepo { return &fakeOutboxRepo{} }

func (r *fakeOutboxRepo) Enqueue(_ context.Context, n *models.Notification) error {
	for _, existing := range r.notifications {
		if existing.Key == n.Key {
			return nil
		}
	}
	n.Status = models.NotificationPending
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeOutboxRepo) FetchDue(_ context.Context, limit int64) ([]models.Notification, error) {
	if int64(len(r.notifications)) < limit {
		limit = int64(len(r.notifications))
	}
	return r.notifications[:limit], nil
}

func (r *fakeOutboxRepo) MarkSent(_ context.Context, _ primitive.ObjectID, _ time.Time) error {
	return nil
}

func (r *fakeOutboxRepo) MarkFailed(_ context.Context, _ primitive.ObjectID, _ int, _ string, _ time.Time, _ bool) error {
	return nil
}

func (r *fakeOutboxRepo) byTemplate(template models.NotificationTemplate) []models.Notification {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.Template == template {
			out = append(out, n)
		}
	}
	return out
}

type fakeAssignmentRepo struct {
	assignments map[primitive.ObjectID]*models.StudentAssignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[primitive.ObjectID]*models.StudentAssignment)}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.StudentAssignment) (primitive.ObjectID, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	for _, existing := range r.assignments {
		if existing.StudentID == a.StudentID && existing.ItemID == a.ItemID && existing.ItemType == a.ItemType {
			return primitive.NilObjectID, apperrors.ErrAlreadyAssigned
		}
	}
	a.CreatedAt = time.Now().UTC()
	r.assignments[a.ID] = a
	return a.ID, nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.StudentAssignment, error) {
	if a, ok := r.assignments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) ExistsForStudentItem(_ context.Context, studentID, itemID primitive.ObjectID, itemType models.ItemType) (bool, error) {
	for _, a := range r.assignments {
		if a.StudentID == studentID && a.ItemID == itemID && a.ItemType == itemType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssignmentRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.AssignmentStatus, completedAt *time.Time) error {
	a, ok := r.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.Status = status
	if completedAt != nil {
		a.CompletedAt = completedAt
		a.Progress = 100
	}
	return nil
}

func (r *fakeAssignmentRepo) UpdatePayment(_ context.Context, id primitive.ObjectID, payment models.Payment) error {
	a, ok := r.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.Payment = payment
	return nil
}

func (r *fakeAssignmentRepo) UpdateProgress(_ context.Context, id primitive.ObjectID, progress int) error {
	a, ok := r.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.Progress = progress
	return nil
}

func (r *fakeAssignmentRepo) SetRequirementSubmission(_ context.Context, id primitive.ObjectID, sub models.RequirementSubmission) error {
	a, ok := r.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.RequirementSubmission = &sub
	return nil
}

func (r *fakeAssignmentRepo) AddDeliveryFile(_ context.Context, id primitive.ObjectID, file models.DeliveryFile) error {
	a, ok := r.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.DeliveryFiles = append(a.DeliveryFiles, file)
	return nil
}

func (r *fakeAssignmentRepo) ListByStudent(_ context.Context, studentID primitive.ObjectID, _, _ int64) ([]models.StudentAssignment, int64, error) {
	var out []models.StudentAssignment
	for _, a := range r.assignments {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAssignmentRepo) List(_ context.Context, filter repositories.AssignmentFilter, _, _ int64) ([]models.StudentAssignment, int64, error) {
	var out []models.StudentAssignment
	for _, a := range r.assignments {
		if filter.StudentID != nil && a.StudentID != *filter.StudentID {
			continue
		}
		if filter.ItemType != "" && a.ItemType != filter.ItemType {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) Count(_ context.Context, _, _ *time.Time) (int64, error) {
	return int64(len(r.assignments)), nil
}

func (r *fakeAssignmentRepo) SumPayments(_ context.Context, _, _ *time.Time) (float64, error) {
	var total float64
	for _, a := range r.assignments {
		if a.Payment.Status != models.PaymentPending {
			total += a.Payment.AdvanceAmount + a.Payment.FinalAmount
		}
	}
	return total, nil
}

type fakeCatalogRepo struct {
	courses     map[primitive.ObjectID]*models.Course
	internships map[primitive.ObjectID]*models.Internship
	projects    map[primitive.ObjectID]*models.Project
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		courses:     make(map[primitive.ObjectID]*models.Course),
		internships: make(map[primitive.ObjectID]*models.Internship),
		projects:    make(map[primitive.ObjectID]*models.Project),
	}
}

func (r *fakeCatalogRepo) CreateCourse(_ context.Context, c *models.Course) (primitive.ObjectID, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.courses[c.ID] = c
	return c.ID, nil
}

func (r *fakeCatalogRepo) GetCourse(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	if c, ok := r.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *fakeCatalogRepo) UpdateCourse(_ context.Context, c *models.Course) error {
	r.courses[c.ID] = c
	return nil
}

func (r *fakeCatalogRepo) DeleteCourse(_ context.Context, id primitive.ObjectID) error {
	delete(r.courses, id)
	return nil
}

func (r *fakeCatalogRepo) ListCourses(_ context.Context, _ repositories.CatalogFilter, _, _ int64) ([]models.Course, int64, error) {
	var out []models.Course
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCatalogRepo) CreateInternship(_ context.Context, i *models.Internship) (primitive.ObjectID, error) {
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	r.internships[i.ID] = i
	return i.ID, nil
}

func (r *fakeCatalogRepo) GetInternship(_ context.Context, id primitive.ObjectID) (*models.Internship, error) {
	if i, ok := r.internships[id]; ok {
		return i, nil
	}
	return nil, apperrors.ErrInternshipNotFound
}

func (r *fakeCatalogRepo) UpdateInternship(_ context.Context, i *models.Internship) error {
	r.internships[i.ID] = i
	return nil
}

func (r *fakeCatalogRepo) DeleteInternship(_ context.Context, id primitive.ObjectID) error {
	delete(r.internships, id)
	return nil
}

func (r *fakeCatalogRepo) ListInternships(_ context.Context, _ repositories.CatalogFilter, _, _ int64) ([]models.Internship, int64, error) {
	var out []models.Internship
	for _, i := range r.internships {
		out = append(out, *i)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCatalogRepo) CreateProject(_ context.Context, p *models.Project) (primitive.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.projects[p.ID] = p
	return p.ID, nil
}

func (r *fakeCatalogRepo) GetProject(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProjectNotFound
}

func (r *fakeCatalogRepo) UpdateProject(_ context.Context, p *models.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeCatalogRepo) DeleteProject(_ context.Context, id primitive.ObjectID) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeCatalogRepo) ListProjects(_ context.Context, _ repositories.CatalogFilter, _, _ int64) ([]models.Project, int64, error) {
	var out []models.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCatalogRepo) CountCatalog(_ context.Context, _, _ *time.Time) (int64, int64, int64, error) {
	return int64(len(r.courses)), int64(len(r.internships)), int64(len(r.projects)), nil
}

type fakeSubmissionRepo struct {
	submissions map[primitive.ObjectID]*models.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[primitive.ObjectID]*models.Submission)}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *models.Submission) (primitive.ObjectID, error) {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = time.Now().UTC()
	r.submissions[s.ID] = s
	return s.ID, nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Submission, error) {
	if s, ok := r.submissions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperrors.ErrSubmissionNotFound
}

func (r *fakeSubmissionRepo) UpdateReview(_ context.Context, id primitive.ObjectID, status models.SubmissionStatus, note string, at time.Time) error {
	s, ok := r.submissions[id]
	if !ok {
		return apperrors.ErrSubmissionNotFound
	}
	s.Status = status
	s.ReviewNote = note
	s.ReviewedAt = &at
	return nil
}

func (r *fakeSubmissionRepo) ListByStudent(_ context.Context, studentID primitive.ObjectID, _, _ int64) ([]models.Submission, int64, error) {
	var out []models.Submission
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubmissionRepo) ListByStatus(_ context.Context, status models.SubmissionStatus, _, _ int64) ([]models.Submission, int64, error) {
	var out []models.Submission
	for _, s := range r.submissions {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubmissionRepo) Count(_ context.Context, _, _ *time.Time) (int64, error) {
	return int64(len(r.submissions)), nil
}

type fakePayrollRepo struct {
	structures map[primitive.ObjectID]*models.SalaryStructure
	payslips   map[primitive.ObjectID]*models.Payslip
	profiles   map[primitive.ObjectID]*models.EmployeeProfile
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		structures: make(map[primitive.ObjectID]*models.SalaryStructure),
		payslips:   make(map[primitive.ObjectID]*models.Payslip),
		profiles:   make(map[primitive.ObjectID]*models.EmployeeProfile),
	}
}

func (r *fakePayrollRepo) UpsertSalaryStructure(_ context.Context, s *models.SalaryStructure) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.structures[s.EmployeeID] = s
	return nil
}

func (r *fakePayrollRepo) GetSalaryStructure(_ context.Context, employeeID primitive.ObjectID) (*models.SalaryStructure, error) {
	if s, ok := r.structures[employeeID]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSalaryStructureNotFound
}

func (r *fakePayrollRepo) CreatePayslip(_ context.Context, p *models.Payslip) (primitive.ObjectID, error) {
	for _, existing := range r.payslips {
		if existing.EmployeeID == p.EmployeeID && existing.Month == p.Month {
			return primitive.NilObjectID, apperrors.ErrPayslipAlreadyExists
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.payslips[p.ID] = p
	return p.ID, nil
}

func (r *fakePayrollRepo) GetPayslip(_ context.Context, id primitive.ObjectID) (*models.Payslip, error) {
	if p, ok := r.payslips[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPayslipNotFound
}

func (r *fakePayrollRepo) GetPayslipForMonth(_ context.Context, employeeID primitive.ObjectID, month string) (*models.Payslip, error) {
	for _, p := range r.payslips {
		if p.EmployeeID == employeeID && p.Month == month {
			return p, nil
		}
	}
	return nil, apperrors.ErrPayslipNotFound
}

func (r *fakePayrollRepo) ListPayslips(_ context.Context, employeeID primitive.ObjectID, _, _ int64) ([]models.Payslip, int64, error) {
	var out []models.Payslip
	for _, p := range r.payslips {
		if p.EmployeeID == employeeID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) ListPayslipsForMonth(_ context.Context, month string) ([]models.Payslip, error) {
	var out []models.Payslip
	for _, p := range r.payslips {
		if p.Month == month {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePayrollRepo) CreateEmployeeProfile(_ context.Context, p *models.EmployeeProfile) (primitive.ObjectID, error) {
	if _, ok := r.profiles[p.UserID]; ok {
		return primitive.NilObjectID, apperrors.NewConflictError("profile already exists")
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.profiles[p.UserID] = p
	return p.ID, nil
}

func (r *fakePayrollRepo) GetEmployeeProfile(_ context.Context, userID primitive.ObjectID) (*models.EmployeeProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, apperrors.ErrEmployeeNotFound
}

func (r *fakePayrollRepo) ListEmployeeProfiles(_ context.Context, _, _ int64) ([]models.EmployeeProfile, int64, error) {
	var out []models.EmployeeProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}
