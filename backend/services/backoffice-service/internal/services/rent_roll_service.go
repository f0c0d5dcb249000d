package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type RentRollService struct {
	rentRollRepo repositories.RentRollRepository
	propertyRepo repositories.PropertyRepository
	tenantRepo   repositories.TenantRepository
	now          func() time.Time
}

func NewRentRollService(
	rentRollRepo repositories.RentRollRepository,
	propertyRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
) *RentRollService {
	return &RentRollService{
		rentRollRepo: rentRollRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		now:          time.Now,
	}
}

// Import reconciles an uploaded rent roll. When at least one row resolves,
// prior records of the same file are replaced atomically. Row failures are
// reported, never returned as an error.
func (s *RentRollService) Import(ctx context.Context, req dtos.RentRollImportRequest) (*dtos.RentRollImportResponse, error) {
	var (
		properties []*models.Property
		tenants    []*models.Tenant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		properties, err = s.propertyRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		tenants, err = s.tenantRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load reconciliation references: %w", err)
	}

	sourceFile := strings.TrimSpace(req.FileName)
	res := Reconcile(req.Data, sourceFile, properties, tenants, s.now().UTC())

	resp := &dtos.RentRollImportResponse{
		CreatedCount: len(res.Records),
		Errors:       res.Errors,
		ErrorCount:   len(res.Errors),
	}
	if resp.Errors == nil {
		resp.Errors = []dtos.RentRollRowError{}
	}

	if len(res.Records) == 0 {
		resp.Message = "No rows could be reconciled; existing data was left unchanged."
		return resp, nil
	}

	if err := s.rentRollRepo.ReplaceForSourceFile(ctx, sourceFile, res.Records); err != nil {
		return nil, fmt.Errorf("replace rent roll %q: %w", sourceFile, err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"sourceFile": sourceFile,
		"created":    resp.CreatedCount,
		"errors":     resp.ErrorCount,
	}).Info("Rent roll imported")

	resp.Message = fmt.Sprintf("Imported %d records from %s.", resp.CreatedCount, sourceFile)
	return resp, nil
}

// MonthlyTotals sums receivables per month across every imported file.
func (s *RentRollService) MonthlyTotals(ctx context.Context) ([]models.MonthlyReceivable, error) {
	out, err := s.rentRollRepo.MonthlyTotals(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.MonthlyReceivable{}
	}
	return out, nil
}
