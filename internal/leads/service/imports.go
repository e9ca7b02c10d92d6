package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/importer"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
)

// BulkImport validates every row, then inserts the valid ones in a single
// batch. Invalid rows are reported by index and do not block the rest.
func (s *Service) BulkImport(ctx context.Context, rows []records.LeadInput) (transport.BulkImportResponse, error) {
	if len(rows) == 0 {
		return transport.BulkImportResponse{}, apperr.Validation("no rows submitted")
	}
	if len(rows) > s.maxRows {
		return transport.BulkImportResponse{}, apperr.Validation(fmt.Sprintf("at most %d rows per import", s.maxRows))
	}

	params := make([]repository.CreateParams, 0, len(rows))
	rowErrors := make([]transport.RowError, 0)
	for i, row := range rows {
		p, err := s.prepare(row)
		if err != nil {
			rowErrors = append(rowErrors, transport.RowError{Index: i, Error: errorMessage(err)})
			continue
		}
		params = append(params, p)
	}

	created, err := s.repo.BulkCreate(ctx, params)
	if err != nil {
		return transport.BulkImportResponse{}, apperr.AsUpstream("failed to import leads", err)
	}

	s.metrics.add(outcomeCreated, created)
	s.metrics.add(outcomeRejected, len(rowErrors))
	s.log.ImportSummary(len(rows), created, len(rowErrors))
	if created > 0 {
		s.bus.Publish(ctx, events.LeadsImported{BaseEvent: events.NewBaseEvent(), Created: created})
	}

	return transport.BulkImportResponse{CreatedCount: created, PerRowErrors: rowErrors}, nil
}

// ImportFile reads a CSV or .xlsx upload, normalizes it and submits the
// surviving rows through BulkImport. intent overrides the hint taken from
// filename.
func (s *Service) ImportFile(ctx context.Context, r io.Reader, filename, intent string) (transport.ImportFileResponse, error) {
	rows, err := importer.ReadFile(r, filename, s.maxRows)
	switch {
	case errors.Is(err, importer.ErrTooManyRows):
		return transport.ImportFileResponse{}, apperr.Validation(fmt.Sprintf("at most %d rows per import", s.maxRows))
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return transport.ImportFileResponse{}, apperr.Validation(err.Error())
	case err != nil:
		s.log.Warn("import file unreadable", "filename", filename, "error", err)
		return transport.ImportFileResponse{}, apperr.BadRequest("unreadable import file")
	}

	batchIntent := importer.IntentFromFilename(filename)
	if strings.TrimSpace(intent) != "" {
		batchIntent = importer.ParseIntent(intent)
	}

	result := s.normalizer.Normalize(rows, batchIntent)
	s.metrics.add(outcomeSkipped, result.Skipped)

	resp := transport.ImportFileResponse{
		BulkImportResponse: transport.BulkImportResponse{PerRowErrors: []transport.RowError{}},
		Skipped:            result.Skipped,
		Intent:             string(batchIntent),
		Columns:            make(map[string]string, len(result.Mapping)),
	}
	for field, column := range result.Mapping {
		resp.Columns[string(field)] = column
	}
	if len(result.Leads) == 0 {
		return resp, nil
	}

	bulk, err := s.BulkImport(ctx, result.Leads)
	if err != nil {
		return transport.ImportFileResponse{}, err
	}
	for i := range bulk.PerRowErrors {
		bulk.PerRowErrors[i].Index = result.SourceRows[bulk.PerRowErrors[i].Index]
	}
	resp.BulkImportResponse = bulk
	return resp, nil
}

func errorMessage(err error) string {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
