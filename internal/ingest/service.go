package ingest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/smartkitchen/inventory-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// maxParallelFiles bounds concurrent file downloads during a folder run.
const maxParallelFiles = 4

// Service loads consumption log exports from Drive into the database.
type Service struct {
	drive *DriveService
	repo  repository.ConsumptionRepository
}

func NewService(drive *DriveService, repo repository.ConsumptionRepository) *Service {
	return &Service{drive: drive, repo: repo}
}

// IngestFile downloads one Drive file and appends its rows to the log.
func (s *Service) IngestFile(ctx context.Context, fileID string) (int, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.drive.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	return s.ingestReader(ctx, pr)
}

// IngestReader appends the rows of one CSV stream to the log. It is the
// path used by direct uploads.
func (s *Service) IngestReader(ctx context.Context, r io.Reader) (int, error) {
	return s.ingestReader(ctx, r)
}

func (s *Service) ingestReader(ctx context.Context, r io.Reader) (int, error) {
	events, err := ParseConsumptionCSV(r)
	if err != nil {
		return 0, err
	}

	if err := s.repo.AppendEvents(ctx, events); err != nil {
		return 0, err
	}
	return len(events), nil
}

// IngestFolder ingests every CSV file in a Drive folder, a few files at a
// time. One bad file fails the run.
func (s *Service) IngestFolder(ctx context.Context, folderID string) (int, error) {
	files, err := s.drive.ListFiles(folderID)
	if err != nil {
		return 0, err
	}

	counts := make([]int, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)

	for i, f := range files {
		if strings.ToLower(filepath.Ext(f.Name)) != ".csv" {
			continue
		}

		g.Go(func() error {
			n, err := s.IngestFile(ctx, f.ID)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			counts[i] = n
			log.Info().Str("file", f.Name).Int("events", n).Msg("file ingested")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}
