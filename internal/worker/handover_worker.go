package worker

// handover_worker.go
// Processes jobs from QueueHandover: rebuilds the shift report from the
// sales table, renders it to PDF and mails it to the requested address.

import (
	"context"
	"encoding/json"
	"fmt"

	"salelog/internal/infra"

	"github.com/rs/zerolog/log"
)

// HandoverPayload is the job body sent to QueueHandover.
type HandoverPayload struct {
	Shift       int    `json:"shift"`
	ToEmail     string `json:"to_email"`
	RequestedBy string `json:"requested_by"`
}

// SheetSource builds the handover sheet for a shift from current data.
type SheetSource interface {
	HandoverSheet(ctx context.Context, shift int) (infra.HandoverSheet, error)
}

// SheetRenderer writes a sheet to a file and returns its path.
type SheetRenderer interface {
	Render(sheet infra.HandoverSheet) (string, error)
}

// HandoverMailer delivers the rendered sheet.
type HandoverMailer interface {
	SendHandover(to, subject, body, pdfPath string) error
}

// HandoverWorker processes shift handover jobs.
type HandoverWorker struct {
	source   SheetSource
	renderer SheetRenderer
	mailer   HandoverMailer
}

func NewHandoverWorker(source SheetSource, renderer SheetRenderer, mailer HandoverMailer) *HandoverWorker {
	return &HandoverWorker{source: source, renderer: renderer, mailer: mailer}
}

// Process implements Processor.
func (w *HandoverWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload HandoverPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: invalid payload: %v", ErrPermanent, err)
	}
	if payload.ToEmail == "" || payload.Shift <= 0 {
		return fmt.Errorf("%w: shift and to_email are required", ErrPermanent)
	}

	sheet, err := w.source.HandoverSheet(ctx, payload.Shift)
	if err != nil {
		return fmt.Errorf("handover: build sheet: %w", err)
	}
	path, err := w.renderer.Render(sheet)
	if err != nil {
		return fmt.Errorf("handover: render: %w", err)
	}

	subject := fmt.Sprintf("%s: shift %d handover", sheet.ShopName, sheet.Shift)
	body := fmt.Sprintf("Shift %d sold %d items for %d. The sheet is attached.", sheet.Shift, sheet.Quantity, sheet.Revenue)
	if err := w.mailer.SendHandover(payload.ToEmail, subject, body, path); err != nil {
		return fmt.Errorf("handover: send: %w", err)
	}

	log.Info().
		Int("shift", payload.Shift).
		Str("to", payload.ToEmail).
		Str("pdf", path).
		Msg("handover_worker: sheet sent")
	return nil
}
