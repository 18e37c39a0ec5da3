package application

import "time"

// Application is one contractor's response to a job. The pair
// (job_id, contractor_id) is unique: a contractor applies to a job at
// most once.
type Application struct {
	ID           string    `db:"id" json:"id"`
	JobID        string    `db:"job_id" json:"job_id"`
	ContractorID string    `db:"contractor_id" json:"contractor_id"`
	Message      string    `db:"message" json:"message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	// Joined fields, filled by list queries
	ContractorName string `db:"contractor_name" json:"contractor_name,omitempty"`
	JobTitle       string `db:"job_title" json:"job_title,omitempty"`
	JobStatus      string `db:"job_status" json:"job_status,omitempty"`
}

type ApplyRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

type ApplyResponse struct {
	Application *Application `json:"application"`
	Message     string       `json:"message"`
}
