package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SubmissionData is the free-form answer payload of a submission. It is only
// validated structurally (must be a JSON object) at the boundary; per-form
// schemas are never typed.
type SubmissionData map[string]interface{}

// Value implements driver.Valuer for JSON storage
func (d SubmissionData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON storage
func (d *SubmissionData) Scan(value interface{}) error {
	if value == nil {
		*d = SubmissionData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return fmt.Errorf("unsupported type %T for SubmissionData", value)
}

// Submission represents a single response to a form
type Submission struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FormID      string         `json:"form_id" gorm:"not null;index;type:varchar(16)"`
	Data        SubmissionData `json:"data" gorm:"type:jsonb"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime;index"`

	// Relationships
	Form Form `json:"form,omitempty" gorm:"foreignKey:FormID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Submission model
func (Submission) TableName() string {
	return "submissions"
}

// SubmitFormResponse is returned to the browser after a successful submission
type SubmitFormResponse struct {
	RedirectURL string `json:"redirect_url" example:"https://acme.example/thanks"`
}
