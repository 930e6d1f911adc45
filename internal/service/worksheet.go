package service

import (
	"context"
	"errors"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize bounds the IDs per store query when none is configured
const DefaultBatchSize = 100

// WorksheetService persists worksheets and re-hydrates them with current problem data
type WorksheetService interface {
	Create(ctx context.Context, requesterID string, worksheet *domain.Worksheet) (*domain.Worksheet, error)
	Get(ctx context.Context, requesterID, id string) (*domain.WorksheetDetail, error)
	Update(ctx context.Context, requesterID, id string, changes *domain.Worksheet) (*domain.Worksheet, error)
	Delete(ctx context.Context, requesterID, id string) error
	SetVisibility(ctx context.Context, requesterID, id string, public bool) (*domain.Worksheet, error)
	ListPublic(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error)
	ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error)
}

type worksheetServiceImpl struct {
	repo      domain.WorksheetRepository
	problems  ProblemLookup
	txManager domain.TransactionManager
	batchSize int
}

// NewWorksheetService creates a new instance of WorksheetService
func NewWorksheetService(repo domain.WorksheetRepository, problems ProblemLookup, txManager domain.TransactionManager, batchSize int) WorksheetService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &worksheetServiceImpl{repo: repo, problems: problems, txManager: txManager, batchSize: batchSize}
}

// Create implements WorksheetService. The requester, when known, becomes the owner.
func (s *worksheetServiceImpl) Create(ctx context.Context, requesterID string, worksheet *domain.Worksheet) (*domain.Worksheet, error) {
	if worksheet == nil {
		return nil, domain.NewInvalidInputError("worksheet cannot be nil")
	}
	if err := prepare(worksheet); err != nil {
		return nil, err
	}

	worksheet.ID = ""
	worksheet.OwnerID = nil
	if requesterID != "" {
		owner := requesterID
		worksheet.OwnerID = &owner
	}

	if err := s.repo.Create(ctx, worksheet); err != nil {
		logger.Get().Error("Failed to create worksheet", zap.Error(err), zap.String("title", worksheet.Title))
		return nil, domain.NewStoreError("Failed to save worksheet", err)
	}

	logger.Get().Info("Worksheet created",
		zap.String("worksheet_id", worksheet.ID),
		zap.Int("problems", len(worksheet.ProblemIDs)),
		zap.String("id_kind", string(worksheet.IDKind)))
	return worksheet, nil
}

// Get implements WorksheetService. Private worksheets are visible to their owner only.
func (s *worksheetServiceImpl) Get(ctx context.Context, requesterID, id string) (*domain.WorksheetDetail, error) {
	worksheet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !worksheet.IsPublic && worksheet.OwnerID != nil && !worksheet.IsOwnedBy(requesterID) {
		return nil, domain.NewForbiddenError("You do not have access to this worksheet").WithContext("worksheet_id", id)
	}

	problems, err := s.rehydrate(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	return &domain.WorksheetDetail{Worksheet: worksheet, Problems: problems}, nil
}

// Update implements WorksheetService. Ownership, visibility and created_at are kept.
func (s *worksheetServiceImpl) Update(ctx context.Context, requesterID, id string, changes *domain.Worksheet) (*domain.Worksheet, error) {
	if changes == nil {
		return nil, domain.NewInvalidInputError("worksheet changes cannot be nil")
	}
	if err := prepare(changes); err != nil {
		return nil, err
	}

	var updated *domain.Worksheet
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		worksheet, err := s.loadOwned(txCtx, requesterID, id)
		if err != nil {
			return err
		}

		worksheet.Title = changes.Title
		worksheet.Author = changes.Author
		worksheet.ProblemIDs = changes.ProblemIDs
		worksheet.Criteria = changes.Criteria
		worksheet.SortRules = changes.SortRules
		worksheet.IDKind = changes.IDKind

		if err := s.repo.Update(txCtx, worksheet); err != nil {
			return storeErr("Failed to update worksheet", id, err)
		}
		updated = worksheet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements WorksheetService. Dependent rows cascade in the store.
func (s *worksheetServiceImpl) Delete(ctx context.Context, requesterID, id string) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.loadOwned(txCtx, requesterID, id); err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return storeErr("Failed to delete worksheet", id, err)
		}
		logger.Get().Info("Worksheet deleted", zap.String("worksheet_id", id))
		return nil
	})
}

// SetVisibility implements WorksheetService
func (s *worksheetServiceImpl) SetVisibility(ctx context.Context, requesterID, id string, public bool) (*domain.Worksheet, error) {
	var updated *domain.Worksheet
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		worksheet, err := s.loadOwned(txCtx, requesterID, id)
		if err != nil {
			return err
		}
		if err := s.repo.SetVisibility(txCtx, id, public); err != nil {
			return storeErr("Failed to change worksheet visibility", id, err)
		}
		worksheet.IsPublic = public
		updated = worksheet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListPublic implements WorksheetService
func (s *worksheetServiceImpl) ListPublic(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error) {
	items, total, err := s.repo.ListPublic(ctx, search, page)
	if err != nil {
		logger.Get().Error("Failed to list public worksheets", zap.Error(err), zap.String("search", search))
		return nil, 0, domain.NewStoreError("Failed to list public worksheets", err)
	}
	return items, total, nil
}

// ListByOwner implements WorksheetService
func (s *worksheetServiceImpl) ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error) {
	if ownerID == "" {
		return nil, 0, domain.NewUnauthorizedError("Sign in to list your worksheets")
	}
	items, total, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		logger.Get().Error("Failed to list worksheets by owner", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, 0, domain.NewStoreError("Failed to list worksheets", err)
	}
	return items, total, nil
}

// prepare validates a worksheet and classifies its ID namespace
func prepare(worksheet *domain.Worksheet) error {
	if err := worksheet.Validate(); err != nil {
		return err
	}
	kind, err := domain.DetectIDKind(worksheet.ProblemIDs)
	if err != nil {
		return err
	}
	worksheet.IDKind = kind
	worksheet.Criteria = worksheet.Criteria.Normalize()
	return nil
}

func (s *worksheetServiceImpl) load(ctx context.Context, id string) (*domain.Worksheet, error) {
	worksheet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Get().Error("Failed to get worksheet", zap.Error(err), zap.String("worksheet_id", id))
		return nil, domain.NewStoreError("Failed to load worksheet", err)
	}
	if worksheet == nil {
		return nil, domain.NewWorksheetNotFoundError(id)
	}
	return worksheet, nil
}

func (s *worksheetServiceImpl) loadOwned(ctx context.Context, requesterID, id string) (*domain.Worksheet, error) {
	worksheet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !worksheet.IsOwnedBy(requesterID) {
		return nil, domain.NewForbiddenError("You do not own this worksheet").WithContext("worksheet_id", id)
	}
	return worksheet, nil
}

// rehydrate fetches current problem data in batches and returns one entry per
// stored ID, in stored order, with placeholders for IDs that no longer resolve.
func (s *worksheetServiceImpl) rehydrate(ctx context.Context, worksheet *domain.Worksheet) ([]*domain.Problem, error) {
	ids := worksheet.ProblemIDs
	if len(ids) == 0 {
		return []*domain.Problem{}, nil
	}

	kind := worksheet.IDKind
	if !kind.Valid() {
		// rows written before the kind column existed
		kind = domain.ClassifyProblemID(ids[0])
	}
	repo, err := s.problems.For(kind)
	if err != nil {
		return nil, err
	}

	batches := chunk(ids, s.batchSize)
	results := make([][]*domain.Problem, len(batches))

	g, gCtx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		g.Go(func() error {
			found, err := repo.FindByIDs(gCtx, batch)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Get().Error("Failed to re-hydrate worksheet problems",
			zap.Error(err),
			zap.String("worksheet_id", worksheet.ID),
			zap.Int("batches", len(batches)))
		return nil, domain.NewStoreError("Failed to load worksheet problems", err)
	}

	byID := make(map[string]*domain.Problem, len(ids))
	for _, found := range results {
		for _, p := range found {
			if p != nil {
				byID[p.ID] = p
			}
		}
	}

	problems := make([]*domain.Problem, len(ids))
	missing := 0
	for i, id := range ids {
		if p, ok := byID[id]; ok {
			problems[i] = p
			continue
		}
		problems[i] = domain.NewMissingProblem(id)
		missing++
	}
	if missing > 0 {
		logger.Get().Info("Worksheet references deleted problems",
			zap.String("worksheet_id", worksheet.ID),
			zap.Int("missing", missing))
	}
	return problems, nil
}

func chunk(ids []string, size int) [][]string {
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// storeErr keeps domain errors from the repository (not found) and wraps the rest
func storeErr(message, id string, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	logger.Get().Error(message, zap.Error(err), zap.String("worksheet_id", id))
	return domain.NewStoreError(message, err)
}
