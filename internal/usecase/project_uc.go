package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
)

var _ ProjectUseCase = (*projectUC)(nil)

type ProjectUseCase interface {
	Create(ctx context.Context, userID, name, description string) (*model.Project, error)
	List(ctx context.Context, userID string) ([]*model.Project, error)

	// Delete removes the project only when it belongs to userID.
	Delete(ctx context.Context, userID, projectID string) error
}

type projectUC struct {
	projects repository.ProjectRepository
	tm       repository.TransactionManager
}

func NewProjectUseCase(projects repository.ProjectRepository, tm repository.TransactionManager) *projectUC {
	return &projectUC{projects: projects, tm: tm}
}

func (p *projectUC) Create(ctx context.Context, userID, name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, fmt.Errorf("%w: user id and project name required", domain.ErrInvalidArgument)
	}
	proj := model.NewProject(userID, name, strings.TrimSpace(description))
	if err := p.projects.Save(ctx, repository.NoTX, proj); err != nil {
		return nil, err
	}
	return proj, nil
}

func (p *projectUC) List(ctx context.Context, userID string) ([]*model.Project, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidArgument)
	}
	return p.projects.ListByUser(ctx, repository.NoTX, userID)
}

func (p *projectUC) Delete(ctx context.Context, userID, projectID string) error {
	// The ownership read and the delete are one atomic operation so the row
	// cannot change hands between them.
	return p.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		proj, err := p.projects.FindByID(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if proj.UserID != userID {
			return domain.ErrNotFound
		}
		return p.projects.Delete(ctx, tx, projectID)
	})
}
