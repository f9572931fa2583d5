package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FormField describes a single field of a form
type FormField struct {
	Label    string `json:"label"`
	Type     string `json:"type"` // text, email, number, textarea, select, checkbox
	Required bool   `json:"required"`
}

// FieldList is an ordered list of form fields stored as a JSON column
type FieldList []FormField

// Value implements driver.Valuer for JSON storage
func (f FieldList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON storage
func (f *FieldList) Scan(value interface{}) error {
	if value == nil {
		*f = FieldList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	}
	return fmt.Errorf("unsupported type %T for FieldList", value)
}

// Form represents a public-facing form owned by an admin.
// The ID is a 10-character uppercase alphanumeric code allocated at creation.
type Form struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(16)"`
	OwnerID     string    `json:"owner_id" gorm:"not null;index;type:uuid"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	RedirectURL string    `json:"redirect_url" gorm:"type:text"`
	Fields      FieldList `json:"fields" gorm:"type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Owner       Admin        `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
	Submissions []Submission `json:"submissions,omitempty" gorm:"foreignKey:FormID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Form model
func (Form) TableName() string {
	return "forms"
}

// CreateFormRequest represents the request to create a new form
type CreateFormRequest struct {
	Title       string      `json:"title" binding:"required" example:"Contact Us"`
	RedirectURL string      `json:"redirect_url,omitempty" example:"https://acme.example/thanks"`
	Fields      []FormField `json:"fields"`
}

// FormResponse represents the response for form operations
type FormResponse struct {
	ID              string      `json:"id" example:"K7Q2M9X1B4"`
	OwnerID         string      `json:"owner_id,omitempty"`
	Title           string      `json:"title" example:"Contact Us"`
	RedirectURL     string      `json:"redirect_url" example:"https://acme.example/thanks"`
	Fields          []FormField `json:"fields"`
	SubmissionCount int64       `json:"submission_count" example:"12"`
	CreatedAt       string      `json:"created_at" example:"2025-01-09T10:30:00Z"`
}
