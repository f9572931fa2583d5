package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/tracking"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FormStore is the persistence surface the form service needs
type FormStore interface {
	Create(form *models.Form) error
	IDExists(id string) (bool, error)
	GetByID(id string) (*models.Form, error)
	GetByOwnerID(ownerID string) ([]*models.Form, error)
	GetByOwnerIDAndID(ownerID, formID string) (*models.Form, error)
	DeleteByOwnerIDAndID(ownerID, formID string) error
}

// SubmissionStore is the persistence surface for submissions
type SubmissionStore interface {
	Create(submission *models.Submission) error
	GetByFormID(formID string) ([]*models.Submission, error)
	CountByFormID(formID string) (int64, error)
}

type FormService struct {
	forms       FormStore
	submissions SubmissionStore
	generator   *tracking.Generator
}

func NewFormService(forms FormStore, submissions SubmissionStore, generator *tracking.Generator) *FormService {
	return &FormService{
		forms:       forms,
		submissions: submissions,
		generator:   generator,
	}
}

// CreateForm creates a form for an admin, allocating its public ID. As with
// tracking codes, a duplicate-key insert failure retries the whole sequence
// once.
func (s *FormService) CreateForm(ownerID string, req *models.CreateFormRequest) (*models.FormResponse, error) {
	fields := req.Fields
	if fields == nil {
		fields = []models.FormField{}
	}

	for attempt := 0; attempt < 2; attempt++ {
		id, err := tracking.AllocateFormID(s.generator, s.forms.IDExists)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate form ID: %w", err)
		}

		form := &models.Form{
			ID:          id,
			OwnerID:     ownerID,
			Title:       req.Title,
			RedirectURL: req.RedirectURL,
			Fields:      fields,
		}

		err = s.forms.Create(form)
		if err == nil {
			return toFormResponse(form, true), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create form: %w", err)
		}
		logrus.Warnf("Form ID %s lost an insert race, retrying allocation", id)
	}
	return nil, errors.New("failed to create form: ID collisions persisted")
}

// GetFormsByOwner retrieves all forms for an admin
func (s *FormService) GetFormsByOwner(ownerID string) ([]*models.FormResponse, error) {
	forms, err := s.forms.GetByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get forms: %w", err)
	}

	responses := make([]*models.FormResponse, len(forms))
	for i, form := range forms {
		responses[i] = toFormResponse(form, true)
		if count, err := s.submissions.CountByFormID(form.ID); err == nil {
			responses[i].SubmissionCount = count
		}
	}
	return responses, nil
}

// GetPublicForm retrieves a form by ID for public rendering. The owner
// reference is not exposed.
func (s *FormService) GetPublicForm(formID string) (*models.FormResponse, error) {
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return nil, errors.New("form not found")
	}
	return toFormResponse(form, false), nil
}

// DeleteForm hard-deletes a form (admin must own it); submissions cascade
func (s *FormService) DeleteForm(ownerID, formID string) error {
	err := s.forms.DeleteByOwnerIDAndID(ownerID, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("form not found")
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}
	return nil
}

// SubmitForm stores a submission against an existing form and returns the
// redirect URL the browser should follow. The payload is free-form; only its
// shape (JSON object) was validated at the boundary.
func (s *FormService) SubmitForm(formID string, data models.SubmissionData) (*models.SubmitFormResponse, error) {
	form, err := s.forms.GetByID(formID)
	if err != nil {
		return nil, errors.New("form not found")
	}

	submission := &models.Submission{
		FormID: form.ID,
		Data:   data,
	}
	if err := s.submissions.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	return &models.SubmitFormResponse{RedirectURL: form.RedirectURL}, nil
}

// GetSubmissions retrieves all submissions for a form the admin owns
func (s *FormService) GetSubmissions(ownerID, formID string) ([]*models.Submission, error) {
	if _, err := s.forms.GetByOwnerIDAndID(ownerID, formID); err != nil {
		return nil, errors.New("form not found")
	}

	submissions, err := s.submissions.GetByFormID(formID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return submissions, nil
}

// GetOwnedForm retrieves a form the admin owns (for export)
func (s *FormService) GetOwnedForm(ownerID, formID string) (*models.Form, error) {
	form, err := s.forms.GetByOwnerIDAndID(ownerID, formID)
	if err != nil {
		return nil, errors.New("form not found")
	}
	return form, nil
}

func toFormResponse(form *models.Form, includeOwner bool) *models.FormResponse {
	resp := &models.FormResponse{
		ID:          form.ID,
		Title:       form.Title,
		RedirectURL: form.RedirectURL,
		Fields:      form.Fields,
		CreatedAt:   form.CreatedAt.Format(time.RFC3339),
	}
	if includeOwner {
		resp.OwnerID = form.OwnerID
	}
	return resp
}
