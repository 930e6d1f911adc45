package service

import (
	"context"
	"time"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/pdf"

	"github.com/stretchr/testify/mock"
)

// --- MockProblemRepository ---
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Problem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) ListBySubject(ctx context.Context, query domain.ProblemQuery) ([]*domain.Problem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) SaveProblem(ctx context.Context, problem *domain.Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}

// --- MockTagRepository ---
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) ListTagPaths(ctx context.Context, subject string) ([]domain.TagPathRow, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TagPathRow), args.Error(1)
}

func (m *MockTagRepository) SaveTagPath(ctx context.Context, row domain.TagPathRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// --- MockWorksheetRepository ---
type MockWorksheetRepository struct {
	mock.Mock
}

func (m *MockWorksheetRepository) Create(ctx context.Context, worksheet *domain.Worksheet) error {
	args := m.Called(ctx, worksheet)
	return args.Error(0)
}

func (m *MockWorksheetRepository) GetByID(ctx context.Context, id string) (*domain.Worksheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worksheet), args.Error(1)
}

func (m *MockWorksheetRepository) Update(ctx context.Context, worksheet *domain.Worksheet) error {
	args := m.Called(ctx, worksheet)
	return args.Error(0)
}

func (m *MockWorksheetRepository) SetVisibility(ctx context.Context, id string, public bool) error {
	args := m.Called(ctx, id, public)
	return args.Error(0)
}

func (m *MockWorksheetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorksheetRepository) ListPublic(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Worksheet), args.Int(1), args.Error(2)
}

func (m *MockWorksheetRepository) ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Worksheet), args.Int(1), args.Error(2)
}

// --- MockTransactionManager ---
// Runs fn directly so repository expectations see the caller's context.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockChapterService ---
type MockChapterService struct {
	mock.Mock
}

func (m *MockChapterService) GetTree(ctx context.Context, subject string) ([]*domain.ChapterNode, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChapterNode), args.Error(1)
}

func (m *MockChapterService) InvalidateTree(ctx context.Context, subject string) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

// --- MockWorksheetService ---
type MockWorksheetService struct {
	mock.Mock
}

func (m *MockWorksheetService) Create(ctx context.Context, requesterID string, worksheet *domain.Worksheet) (*domain.Worksheet, error) {
	args := m.Called(ctx, requesterID, worksheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) Get(ctx context.Context, requesterID, id string) (*domain.WorksheetDetail, error) {
	args := m.Called(ctx, requesterID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorksheetDetail), args.Error(1)
}

func (m *MockWorksheetService) Update(ctx context.Context, requesterID, id string, changes *domain.Worksheet) (*domain.Worksheet, error) {
	args := m.Called(ctx, requesterID, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) Delete(ctx context.Context, requesterID, id string) error {
	args := m.Called(ctx, requesterID, id)
	return args.Error(0)
}

func (m *MockWorksheetService) SetVisibility(ctx context.Context, requesterID, id string, public bool) (*domain.Worksheet, error) {
	args := m.Called(ctx, requesterID, id, public)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worksheet), args.Error(1)
}

func (m *MockWorksheetService) ListPublic(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Worksheet), args.Int(1), args.Error(2)
}

func (m *MockWorksheetService) ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Worksheet), args.Int(1), args.Error(2)
}

// --- MockImageFetcher ---
type MockImageFetcher struct {
	mock.Mock
}

func (m *MockImageFetcher) Fetch(ctx context.Context, filename string) ([]byte, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- MockRenderer ---
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, doc *pdf.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
