package service

import (
	"context"
	"fmt"

	"salelog/internal/config"
	"salelog/internal/infra"
	"salelog/internal/worker"

	"github.com/rs/zerolog/log"
)

// HandoverEnqueuer is the part of worker.Dispatcher this service needs.
type HandoverEnqueuer interface {
	EnqueueHandover(ctx context.Context, payload worker.HandoverPayload) error
}

// HandoverService queues shift handover mails and, on the worker side,
// builds the sheet from a fresh report.
type HandoverService interface {
	Request(ctx context.Context, shift int, email, requestedBy string) error
	HandoverSheet(ctx context.Context, shift int) (infra.HandoverSheet, error)
}

type handoverService struct {
	sales SaleService
	queue HandoverEnqueuer
	cfg   *config.Config
}

func NewHandoverService(sales SaleService, queue HandoverEnqueuer, cfg *config.Config) HandoverService {
	return &handoverService{sales: sales, queue: queue, cfg: cfg}
}

func (s *handoverService) Request(ctx context.Context, shift int, email, requestedBy string) error {
	if shift <= 0 {
		return fmt.Errorf("handover: shift must be positive, got %d", shift)
	}
	payload := worker.HandoverPayload{Shift: shift, ToEmail: email, RequestedBy: requestedBy}
	if err := s.queue.EnqueueHandover(ctx, payload); err != nil {
		return fmt.Errorf("handover: enqueue: %w", err)
	}
	log.Info().Int("shift", shift).Str("to", email).Str("requested_by", requestedBy).Msg("handover queued")
	return nil
}

// HandoverSheet rebuilds the report and extracts one shift. A shift with no
// sales still yields a sheet, with an empty item list.
func (s *handoverService) HandoverSheet(ctx context.Context, shift int) (infra.HandoverSheet, error) {
	rep, now, err := s.sales.Report(ctx)
	if err != nil {
		return infra.HandoverSheet{}, err
	}
	totals := rep.Shifts[shift]
	return infra.HandoverSheet{
		ShopName:    s.cfg.ShopName,
		Shift:       shift,
		GeneratedAt: now.In(s.cfg.Location()),
		Items:       rep.ShiftProductList(shift),
		Quantity:    totals.Quantity,
		Revenue:     totals.Revenue,
		DayRevenue:  rep.TotalRevenue,
	}, nil
}
