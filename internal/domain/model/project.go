package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is one saved dashboard project.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProject(userID, name, description string) *Project {
	return &Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
