package job

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusClosed    = "closed"
)

type Job struct {
	ID           string         `db:"id" json:"id"`
	ClientID     string         `db:"client_id" json:"client_id"`
	Title        string         `db:"title" json:"title"`
	Category     string         `db:"category" json:"category"`
	Description  string         `db:"description" json:"description"`
	Budget       string         `db:"budget" json:"budget"`
	Country      string         `db:"country" json:"country"`
	City         string         `db:"city" json:"city"`
	StartDate    string         `db:"start_date" json:"start_date"`
	Duration     string         `db:"duration" json:"duration"`
	Workload     string         `db:"workload" json:"workload"`
	Status       string         `db:"status" json:"status"`
	Views        int            `db:"views" json:"views"`
	Applications int            `db:"applications" json:"applications"`
	Photos       pq.StringArray `db:"photos" json:"photos" swaggertype:"array,string"`
	Details      types.JSONText `db:"details" json:"details" swaggertype:"object"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

type PostJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Budget      string   `json:"budget"`
	Country     string   `json:"country"`
	City        string   `json:"city"`
	StartDate   string   `json:"start_date"`
	Duration    string   `json:"duration"`
	Workload    string   `json:"workload"`
	Photos      []string `json:"photos"`
	Details     types.JSONText `json:"details" swaggertype:"object"`
}

type PostJobResponse struct {
	Job            *Job `json:"job"`
	BalanceCredits int  `json:"balance_credits"`
}
