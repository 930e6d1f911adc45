package service

import (
	"context"
	"fmt"

	"exam-worksheet/internal/chapter"
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/dto"
	"exam-worksheet/internal/filter"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/sorting"

	"go.uber.org/zap"
)

// ProblemLookup routes each problem ID namespace to the repository that stores it
type ProblemLookup map[domain.ProblemIDKind]domain.ProblemRepository

// For returns the repository of kind
func (l ProblemLookup) For(kind domain.ProblemIDKind) (domain.ProblemRepository, error) {
	repo, ok := l[kind]
	if !ok || repo == nil {
		return nil, domain.NewInternalError(fmt.Sprintf("no problem repository for namespace %q", kind), nil)
	}
	return repo, nil
}

// ProblemService searches problems the way the worksheet builder UI does:
// store query, chapter expansion, sort, then filter.
type ProblemService interface {
	Search(ctx context.Context, req *dto.SearchProblemsRequest) (*dto.SearchProblemsResponse, error)
}

type problemServiceImpl struct {
	problems ProblemLookup
	chapters ChapterService
	bands    []domain.DifficultyBand
}

// NewProblemService creates a new instance of ProblemService
func NewProblemService(problems ProblemLookup, chapters ChapterService, bands []domain.DifficultyBand) ProblemService {
	return &problemServiceImpl{problems: problems, chapters: chapters, bands: bands}
}

// Search implements ProblemService. Sorting runs before filtering so the count cap
// keeps the highest-ranked problems.
func (s *problemServiceImpl) Search(ctx context.Context, req *dto.SearchProblemsRequest) (*dto.SearchProblemsResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("search request cannot be nil")
	}

	kind := domain.ProblemIDKind(req.IDKind)
	if kind == "" {
		kind = domain.ProblemIDDefault
	}
	if !kind.Valid() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown problem namespace %q", req.IDKind))
	}
	mode := domain.ChapterModeFor(kind)

	repo, err := s.problems.For(kind)
	if err != nil {
		return nil, err
	}

	tree, err := s.chapters.GetTree(ctx, req.Subject)
	if err != nil {
		return nil, err
	}

	criteria := req.Criteria.ToDomain()
	criteria.SelectedChapters = chapter.ExpandSelection(tree, criteria.SelectedChapters)
	if len(criteria.SelectedChapters) == 0 {
		return &dto.SearchProblemsResponse{Problems: []dto.ProblemResponse{}}, nil
	}

	candidates, err := repo.ListBySubject(ctx, domain.ProblemQuery{
		Subject:    req.Subject,
		ChapterIDs: criteria.SelectedChapters,
	})
	if err != nil {
		logger.Get().Error("Failed to list candidate problems",
			zap.Error(err),
			zap.String("subject", req.Subject),
			zap.String("kind", string(kind)))
		return nil, domain.NewStoreError("Failed to load problems", err)
	}

	engine := sorting.NewEngine(
		sorting.WithChapterPaths(chapter.PathIndex(tree)),
		sorting.WithMode(mode),
	)
	sorted := engine.Apply(candidates, dto.SortRulesToDomain(req.SortRules))
	result := filter.Apply(sorted, criteria, filter.Options{ChapterMode: mode, DifficultyBands: s.bands})

	logger.Get().Debug("Problem search completed",
		zap.String("subject", req.Subject),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(result)))

	return &dto.SearchProblemsResponse{
		Problems: dto.NewProblemResponses(result),
		Total:    len(result),
	}, nil
}
