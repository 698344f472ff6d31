package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	srvErrors "sqlrunner/pkg/errors"
	"sqlrunner/pkg/models"
	"sqlrunner/pkg/repositories"
)

// sampleRowLimit caps the sample data returned with a table description.
const sampleRowLimit = 5

// metadataService implements MetadataService on top of the metadata
// repository. Schemas are recomputed per request and never cached.
type metadataService struct {
	repo   repositories.MetadataRepository
	logger zerolog.Logger
}

// NewMetadataService creates a new metadata service.
func NewMetadataService(repo repositories.MetadataRepository, logger zerolog.Logger) MetadataService {
	return &metadataService{
		repo:   repo,
		logger: logger,
	}
}

// ListTables returns user table names in alphabetical order.
func (s *metadataService) ListTables(ctx context.Context) ([]string, error) {
	return s.repo.ListTables(ctx)
}

// DescribeTable returns column metadata and a bounded row sample. An unknown
// table yields a typed not-found error, never a raw data-layer error.
func (s *metadataService) DescribeTable(ctx context.Context, name string) (*models.TableSchema, error) {
	exists, err := s.repo.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, srvErrors.New(srvErrors.CodeNotFound, fmt.Sprintf("Table '%s' not found", name))
	}

	columns, err := s.repo.DescribeColumns(ctx, name)
	if err != nil {
		return nil, err
	}

	sample, err := s.repo.SampleRows(ctx, name, sampleRowLimit)
	if err != nil {
		return nil, err
	}

	return &models.TableSchema{
		Name:       name,
		Columns:    columns,
		SampleData: sample,
	}, nil
}
