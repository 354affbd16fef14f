package service

import (
	"context"
	"fmt"
	"sync"

	"burn_tokens_back/models"
	"burn_tokens_back/pkg/notify"
	"burn_tokens_back/pkg/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type BurnService struct {
	repos    repository.Burn
	notifier notify.Notifier
	pending  sync.WaitGroup
}

func NewBurnService(repos repository.Burn, notifier notify.Notifier) *BurnService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &BurnService{
		repos:    repos,
		notifier: notifier,
	}
}

func (s *BurnService) Create(ctx context.Context, req models.BurnRequest) (models.BurnReceipt, error) {
	burn, err := req.NewBurn()
	if err != nil {
		return models.BurnReceipt{}, err
	}

	record, err := s.repos.Create(ctx, burn)
	if err != nil {
		return models.BurnReceipt{}, err
	}
	logrus.WithFields(logrus.Fields{
		"burn_id":       record.ID,
		"token_address": record.TokenAddress,
		"amount":        record.Amount,
	}).Info("burn recorded")

	if _, off := s.notifier.(notify.Nop); !off {
		s.pending.Add(1)
		// outlives the request context
		go func() {
			defer s.pending.Done()
			if err := s.notifier.BurnCreated(context.Background(), record); err != nil {
				logrus.WithError(err).WithField("burn_id", record.ID).Warn("burn notification failed")
			}
		}()
	}

	return models.BurnReceipt{
		Success: true,
		BurnID:  record.ID,
		TxHash:  record.TxHash,
		Message: fmt.Sprintf("Successfully burned %s tokens", req.Amount),
	}, nil
}

func (s *BurnService) List(ctx context.Context, page models.Page) (models.BurnPage, error) {
	return s.repos.List(ctx, models.NewPage(page.Number, page.Limit))
}

func (s *BurnService) Get(ctx context.Context, id int64) (models.BurnRecord, error) {
	return s.repos.Get(ctx, id)
}

func (s *BurnService) Stats(ctx context.Context) (models.BurnStats, error) {
	return s.repos.Stats(ctx)
}

// Wait blocks until every notification started by Create has finished or ctx is done.
func (s *BurnService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for burn notifications")
	}
}
