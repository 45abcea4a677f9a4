package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Domain models matching the database schema in db/migrations/0001_init.sql

// Role is the account role used by the authorization policy.
type Role string

const (
	RoleIndividual Role = "individual"
	RoleCompany    Role = "company"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// JobStatus is the application status of a job record.
type JobStatus string

const (
	StatusApplied            JobStatus = "applied"
	StatusUnderConsideration JobStatus = "underconsideration"
	StatusInterview          JobStatus = "interview"
	StatusPending            JobStatus = "pending"
	StatusDeclined           JobStatus = "declined"
)

// JobStatuses lists every known status in a stable order. Stats responses
// carry all of them, zero-filled.
var JobStatuses = []JobStatus{
	StatusApplied,
	StatusUnderConsideration,
	StatusInterview,
	StatusPending,
	StatusDeclined,
}

func (s JobStatus) Valid() bool {
	for _, known := range JobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// JobType is the employment type of a job record.
type JobType string

const (
	TypeFullTime   JobType = "full-time"
	TypePartTime   JobType = "part-time"
	TypeRemote     JobType = "remote"
	TypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeRemote, TypeInternship:
		return true
	}
	return false
}

const (
	DefaultJobStatus   = StatusPending
	DefaultJobType     = TypeFullTime
	DefaultJobLocation = "United States"
)

type Account struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	Role         Role    `json:"role" db:"role"`
	CompanyName  *string `json:"companyName,omitempty" db:"company_name"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Created      int64   `json:"created" db:"created"`
	Updated      int64   `json:"updated" db:"updated"`
}

// SetPassword hashes plaintext and stores the hash. It is the only path
// that writes PasswordHash, so a password is hashed exactly once and never
// rehashed by unrelated account updates.
func (a *Account) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (a *Account) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)) == nil
}

type Job struct {
	ID          int64     `json:"id" db:"id"`
	Company     string    `json:"company" db:"company"`
	Role        string    `json:"role" db:"role"`
	Status      JobStatus `json:"status" db:"status"`
	Type        JobType   `json:"type" db:"type"`
	Location    string    `json:"location" db:"location"`
	SalaryRange string    `json:"salaryRange,omitempty" db:"salary_range"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	Created     int64     `json:"createdAt" db:"created"`
	Updated     int64     `json:"updatedAt" db:"updated"`
}

// Caller is the authenticated account attached to a request by the JWT
// middleware: just the identity the authorization policy needs.
type Caller struct {
	ID   int64  `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}

// MonthCount is one (year, month) aggregation bucket.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}
