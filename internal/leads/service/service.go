// Package service implements the leads business logic: CRUD, CSV import,
// and round-robin caller-ID assignment.
package service

import (
	"bytes"
	"context"
	"io"

	"callcampaign_backend/internal/events"
	"callcampaign_backend/internal/leads/repository"
	"callcampaign_backend/internal/leads/transport"
	"callcampaign_backend/internal/storage"
	"callcampaign_backend/platform/apperr"
	"callcampaign_backend/platform/logger"
	"callcampaign_backend/platform/phone"

	"github.com/google/uuid"
)

// Service implements lead management operations.
type Service struct {
	repo          repository.Repository
	storageSvc    storage.Service
	archiveBucket string
	bus           events.Bus
	log           *logger.Logger
}

// New creates a new leads service. storageSvc may be nil; the CSV archive is
// then skipped.
func New(repo repository.Repository, storageSvc storage.Service, archiveBucket string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:          repo,
		storageSvc:    storageSvc,
		archiveBucket: archiveBucket,
		bus:           bus,
		log:           log,
	}
}

// GetByID retrieves a single lead.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves leads with an optional status filter.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.ListLeadsResponse, error) {
	leads, total, err := s.repo.List(ctx, repository.ListParams{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	return transport.ListLeadsResponse{Leads: leads, Total: total}, nil
}

// Create inserts a single lead with a caller ID assigned from the active
// pool. A lead that cannot be assigned a caller ID is created Failed; it can
// never be dialed.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (repository.Lead, error) {
	phoneIDs, err := s.repo.ListActivePhoneIDs(ctx)
	if err != nil {
		return repository.Lead{}, err
	}

	params := repository.CreateParams{
		Name:        req.Name,
		PhoneNumber: phone.NormalizeE164(req.PhoneNumber),
		Status:      repository.StatusPending,
	}
	if len(phoneIDs) > 0 {
		params.PhoneID = &phoneIDs[0]
	} else {
		params.Status = repository.StatusFailed
	}

	return s.repo.Create(ctx, params)
}

// ImportCSV parses an uploaded lead file, assigns caller IDs round-robin
// from the active pool, inserts the leads, and archives the raw file when
// storage is configured. Returns a summary; row-level problems are reported
// in the summary, not as errors.
func (s *Service) ImportCSV(ctx context.Context, fileName string, r io.Reader) (transport.ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return transport.ImportResult{}, apperr.Wrap(apperr.KindBadRequest, "could not read upload", err)
	}

	rows, skipped, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return transport.ImportResult{}, apperr.Wrap(apperr.KindValidation, "invalid CSV file", err)
	}

	phoneIDs, err := s.repo.ListActivePhoneIDs(ctx)
	if err != nil {
		return transport.ImportResult{}, err
	}

	params := make([]repository.CreateParams, 0, len(rows))
	for i, row := range rows {
		p := repository.CreateParams{
			Name:        row.Name,
			PhoneNumber: row.Phone,
			Status:      repository.StatusPending,
		}
		if len(phoneIDs) > 0 {
			p.PhoneID = &phoneIDs[i%len(phoneIDs)]
		} else {
			p.Status = repository.StatusFailed
		}
		params = append(params, p)
	}

	ids, err := s.repo.CreateBatch(ctx, params)
	if err != nil {
		return transport.ImportResult{}, err
	}

	archiveKey := s.archive(ctx, fileName, raw)

	importID := uuid.New()
	s.bus.Publish(ctx, events.LeadsImported{
		BaseEvent:    events.NewBaseEvent(),
		ImportID:     importID,
		FileName:     fileName,
		Imported:     len(ids),
		Skipped:      len(skipped),
		ArchiveKey:   archiveKey,
		ErrorSamples: truncateSamples(skipped, 5),
	})

	s.log.Info("lead import complete",
		"file", fileName,
		"imported", len(ids),
		"skipped", len(skipped),
		"poolSize", len(phoneIDs),
	)

	return transport.ImportResult{
		ImportID: importID,
		Imported: len(ids),
		Skipped:  len(skipped),
		LeadIDs:  ids,
		Errors:   truncateSamples(skipped, 10),
	}, nil
}

// archive stores the raw uploaded file for audit. Best-effort: failures are
// logged and the import proceeds.
func (s *Service) archive(ctx context.Context, fileName string, raw []byte) string {
	if s.storageSvc == nil || s.archiveBucket == "" {
		return ""
	}

	key, err := s.storageSvc.UploadFile(ctx, s.archiveBucket, "imports", fileName, "text/csv", bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		s.log.Warn("failed to archive lead import file", "file", fileName, "error", err)
		return ""
	}

	return key
}

func truncateSamples(samples []string, max int) []string {
	if len(samples) <= max {
		return samples
	}
	return samples[:max]
}
