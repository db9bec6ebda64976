// Package domain holds DTOs for records http and service contracts
package domain

import "time"

// SubmitIn is the payload for a self-service salary submission
// experience_category is validated against the fixed category list
type SubmitIn struct {
	University         string  `json:"university"          validate:"required,max=255"`
	Major              string  `json:"major"               validate:"required,max=255"`
	Industry           string  `json:"industry"            validate:"required,max=255"`
	Occupation         string  `json:"occupation"          validate:"required,max=255"`
	ExperienceCategory string  `json:"experience_category" validate:"required,experience_category"`
	City               string  `json:"city"                validate:"required,max=128"`
	SalaryEUR          float64 `json:"salary_eur"          validate:"required,gt=0"`
}

// RecordOut is one salary record as returned to its owner
type RecordOut struct {
	RecordID           int64     `json:"record_id"           example:"42"`
	UserID             string    `json:"user_id"             example:"u-123"`
	University         string    `json:"university"          example:"TU Delft"`
	Major              string    `json:"major"               example:"Computer Science"`
	Industry           string    `json:"industry"            example:"Tech"`
	Occupation         string    `json:"occupation"          example:"Software Engineer"`
	ExperienceCategory string    `json:"experience_category" example:"1-3 years"`
	City               string    `json:"city"                example:"Amsterdam"`
	SalaryEUR          float64   `json:"salary_eur"          example:"62000"`
	SubmissionDate     time.Time `json:"submission_date"`
}

// ListOut wraps the owner's submissions
type ListOut struct {
	Count   int         `json:"count" example:"2"`
	Results []RecordOut `json:"results"`
}

// SubmitOut acknowledges a stored submission
type SubmitOut struct {
	RecordID       int64     `json:"record_id" example:"42"`
	UserID         string    `json:"user_id"   example:"u-123"`
	SubmissionDate time.Time `json:"submission_date"`
}
