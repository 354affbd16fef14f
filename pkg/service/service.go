package service

import (
	"context"

	"burn_tokens_back/models"
	"burn_tokens_back/pkg/notify"
	"burn_tokens_back/pkg/repository"
)

type Burn interface {
	Create(ctx context.Context, req models.BurnRequest) (models.BurnReceipt, error)
	List(ctx context.Context, page models.Page) (models.BurnPage, error)
	Get(ctx context.Context, id int64) (models.BurnRecord, error)
	Stats(ctx context.Context) (models.BurnStats, error)
}

type Service struct {
	Burn

	burns *BurnService
}

func NewService(repos *repository.Repository, notifier notify.Notifier) *Service {
	burns := NewBurnService(repos.Burn, notifier)
	return &Service{
		Burn:  burns,
		burns: burns,
	}
}

// Wait drains in-flight burn notifications.
func (s *Service) Wait(ctx context.Context) error {
	if s.burns == nil {
		return nil
	}
	return s.burns.Wait(ctx)
}
