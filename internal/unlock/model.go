package unlock

import "time"

// Record marks that a contractor has paid to see a job poster's contact
// details. One record per (job, contractor) pair, ever.
type Record struct {
	ID             int       `db:"id" json:"-"`
	JobID          string    `db:"job_id" json:"job_id"`
	ContractorID   string    `db:"contractor_id" json:"contractor_id"`
	ContractorName string    `db:"contractor_name" json:"contractor_name"`
	CountryCode    string    `db:"country_code" json:"country_code"`
	UnlockedAt     time.Time `db:"unlocked_at" json:"unlocked_at"`
}

type UnlockResponse struct {
	Unlock          *Record `json:"unlock"`
	BalanceCredits  int     `json:"balance_credits"`
	AlreadyUnlocked bool    `json:"already_unlocked"`
}

// Contact is the job poster's contact payload, revealed after unlock.
type Contact struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}
