package repository

import (
	"context"

	"ai-chat-dashboard/internal/domain/model"
)

type ProjectRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Project) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Project, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Project, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
