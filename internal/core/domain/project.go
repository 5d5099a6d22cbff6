package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a portfolio project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Project is a portfolio entry owned by a single user.
type Project struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Technologies []string      `json:"technologies"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      *time.Time    `json:"end_date,omitempty"`
	Status       ProjectStatus `json:"status"`
	ImageURL     string        `json:"image_url,omitempty"`
	ProjectURL   string        `json:"project_url,omitempty"`
	UserID       int64         `json:"user_id"`
	OwnerName    string        `json:"user_username,omitempty"`
	OwnerEmail   string        `json:"user_email,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
