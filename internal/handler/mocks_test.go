package handler_test

import (
	"context"
	"errors"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/dto"
	"exam-worksheet/internal/pdf"

	"github.com/golang-jwt/jwt/v5"
)

// --- Manual Mocks ---

type MockChapterService struct {
	GetTreeFunc func(ctx context.Context, subject string) ([]*domain.ChapterNode, error)
}

func (m *MockChapterService) GetTree(ctx context.Context, subject string) ([]*domain.ChapterNode, error) {
	if m.GetTreeFunc != nil {
		return m.GetTreeFunc(ctx, subject)
	}
	panic("MockChapterService.GetTreeFunc not implemented")
}

func (m *MockChapterService) InvalidateTree(ctx context.Context, subject string) error {
	return nil
}

type MockProblemService struct {
	SearchFunc func(ctx context.Context, req *dto.SearchProblemsRequest) (*dto.SearchProblemsResponse, error)
}

func (m *MockProblemService) Search(ctx context.Context, req *dto.SearchProblemsRequest) (*dto.SearchProblemsResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	panic("MockProblemService.SearchFunc not implemented")
}

type MockWorksheetService struct {
	CreateFunc        func(ctx context.Context, requesterID string, w *domain.Worksheet) (*domain.Worksheet, error)
	GetFunc           func(ctx context.Context, requesterID, id string) (*domain.WorksheetDetail, error)
	UpdateFunc        func(ctx context.Context, requesterID, id string, changes *domain.Worksheet) (*domain.Worksheet, error)
	DeleteFunc        func(ctx context.Context, requesterID, id string) error
	SetVisibilityFunc func(ctx context.Context, requesterID, id string, public bool) (*domain.Worksheet, error)
	ListPublicFunc    func(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error)
	ListByOwnerFunc   func(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error)
}

func (m *MockWorksheetService) Create(ctx context.Context, requesterID string, w *domain.Worksheet) (*domain.Worksheet, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, requesterID, w)
	}
	panic("MockWorksheetService.CreateFunc not implemented")
}

func (m *MockWorksheetService) Get(ctx context.Context, requesterID, id string) (*domain.WorksheetDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, requesterID, id)
	}
	panic("MockWorksheetService.GetFunc not implemented")
}

func (m *MockWorksheetService) Update(ctx context.Context, requesterID, id string, changes *domain.Worksheet) (*domain.Worksheet, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, requesterID, id, changes)
	}
	panic("MockWorksheetService.UpdateFunc not implemented")
}

func (m *MockWorksheetService) Delete(ctx context.Context, requesterID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, requesterID, id)
	}
	panic("MockWorksheetService.DeleteFunc not implemented")
}

func (m *MockWorksheetService) SetVisibility(ctx context.Context, requesterID, id string, public bool) (*domain.Worksheet, error) {
	if m.SetVisibilityFunc != nil {
		return m.SetVisibilityFunc(ctx, requesterID, id, public)
	}
	panic("MockWorksheetService.SetVisibilityFunc not implemented")
}

func (m *MockWorksheetService) ListPublic(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error) {
	if m.ListPublicFunc != nil {
		return m.ListPublicFunc(ctx, search, page)
	}
	panic("MockWorksheetService.ListPublicFunc not implemented")
}

func (m *MockWorksheetService) ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, page)
	}
	panic("MockWorksheetService.ListByOwnerFunc not implemented")
}

type MockDocumentService struct {
	BuildDocumentFunc func(ctx context.Context, requesterID, id string, withAnswers bool) (*pdf.Document, error)
	RenderPDFFunc     func(ctx context.Context, requesterID, id string, withAnswers bool) ([]byte, error)
	AnswerKeyFunc     func(ctx context.Context, requesterID, id string) ([]byte, error)
}

func (m *MockDocumentService) BuildDocument(ctx context.Context, requesterID, id string, withAnswers bool) (*pdf.Document, error) {
	if m.BuildDocumentFunc != nil {
		return m.BuildDocumentFunc(ctx, requesterID, id, withAnswers)
	}
	panic("MockDocumentService.BuildDocumentFunc not implemented")
}

func (m *MockDocumentService) RenderPDF(ctx context.Context, requesterID, id string, withAnswers bool) ([]byte, error) {
	if m.RenderPDFFunc != nil {
		return m.RenderPDFFunc(ctx, requesterID, id, withAnswers)
	}
	panic("MockDocumentService.RenderPDFFunc not implemented")
}

func (m *MockDocumentService) AnswerKey(ctx context.Context, requesterID, id string) ([]byte, error) {
	if m.AnswerKeyFunc != nil {
		return m.AnswerKeyFunc(ctx, requesterID, id)
	}
	panic("MockDocumentService.AnswerKeyFunc not implemented")
}

// MockAuthService accepts the single token "valid_access_token"
type MockAuthService struct{}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString != validToken {
		return nil, errors.New("invalid JWT token")
	}
	return &dto.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: testUserID}}, nil
}
