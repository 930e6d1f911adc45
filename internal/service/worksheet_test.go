package service

import (
	"context"
	"errors"
	"testing"

	"exam-worksheet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = "6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f"
	strangerID = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

func strPtr(s string) *string { return &s }

func newWorksheetServiceForTest(batchSize int) (WorksheetService, *MockWorksheetRepository, *MockProblemRepository, *MockTransactionManager) {
	repo := new(MockWorksheetRepository)
	problems := new(MockProblemRepository)
	tx := new(MockTransactionManager)
	lookup := ProblemLookup{
		domain.ProblemIDDefault: problems,
		domain.ProblemIDTagged:  problems,
		domain.ProblemIDEconomy: problems,
	}
	return NewWorksheetService(repo, lookup, tx, batchSize), repo, problems, tx
}

func storedWorksheet(ids ...string) *domain.Worksheet {
	return &domain.Worksheet{
		ID:         "01J9ZQ7W8X3Y4Z5A6B7C8D9E0F",
		Title:      "1학기 중간고사 대비",
		Author:     "김선생",
		OwnerID:    strPtr(ownerID),
		ProblemIDs: ids,
		IDKind:     domain.ProblemIDDefault,
	}
}

func TestWorksheetService_Create(t *testing.T) {
	tests := []struct {
		name      string
		requester string
		worksheet *domain.Worksheet
		wantCode  domain.ErrorCode
		wantKind  domain.ProblemIDKind
		wantOwner *string
	}{
		{
			name:      "anonymous default namespace",
			worksheet: &domain.Worksheet{Title: "연습", ProblemIDs: []string{"a", "b"}},
			wantKind:  domain.ProblemIDDefault,
		},
		{
			name:      "owned economy namespace",
			requester: ownerID,
			worksheet: &domain.Worksheet{Title: "경제 모의고사", ProblemIDs: []string{"경제_고3_2024_06_모평_1_문제", "경제_고3_2024_06_모평_2_문제"}},
			wantKind:  domain.ProblemIDEconomy,
			wantOwner: strPtr(ownerID),
		},
		{
			name:      "empty selection",
			worksheet: &domain.Worksheet{Title: "빈 시험지"},
			wantCode:  domain.CodeEmptySelection,
		},
		{
			name:      "blank title",
			worksheet: &domain.Worksheet{Title: "  ", ProblemIDs: []string{"a"}},
			wantCode:  domain.CodeValidation,
		},
		{
			name:      "mixed namespaces",
			worksheet: &domain.Worksheet{Title: "혼합", ProblemIDs: []string{"a", "통합사회_고1_2023_03_학평_4_문제"}},
			wantCode:  domain.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newWorksheetServiceForTest(0)
			if tt.wantCode == "" {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Worksheet")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Worksheet).ID = "01J9ZQ7W8X3Y4Z5A6B7C8D9E0F"
					}).
					Return(nil).Once()
			}

			created, err := svc.Create(context.Background(), tt.requester, tt.worksheet)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, domain.HasCode(err, tt.wantCode), "got %v", err)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, created.IDKind)
			assert.Equal(t, tt.wantOwner, created.OwnerID)
			assert.Equal(t, domain.DefaultRateRange(), created.Criteria.RateRangeOrDefault())
			repo.AssertExpectations(t)
		})
	}
}

func TestWorksheetService_Create_StoreError(t *testing.T) {
	svc, repo, _, _ := newWorksheetServiceForTest(0)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	_, err := svc.Create(context.Background(), "", &domain.Worksheet{Title: "t", ProblemIDs: []string{"a"}})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeStore))
}

// Deleted problems come back as placeholders at their stored position.
func TestWorksheetService_Get_PlaceholdersForDeletedProblems(t *testing.T) {
	svc, repo, problems, _ := newWorksheetServiceForTest(2)
	ws := storedWorksheet("a", "b", "c")

	repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
	problems.On("FindByIDs", mock.Anything, []string{"a", "b"}).
		Return([]*domain.Problem{{ID: "a", Tags: []string{}}}, nil).Once()
	problems.On("FindByIDs", mock.Anything, []string{"c"}).
		Return([]*domain.Problem{{ID: "c", Tags: []string{}}}, nil).Once()

	detail, err := svc.Get(context.Background(), ownerID, ws.ID)
	require.NoError(t, err)
	require.Len(t, detail.Problems, 3)
	assert.Equal(t, []string{"a", "b", "c"}, domain.ProblemIDs(detail.Problems))
	assert.False(t, detail.Problems[0].IsMissing)
	assert.True(t, detail.Problems[1].IsMissing)
	assert.False(t, detail.Problems[2].IsMissing)
	assert.Equal(t, 1, detail.MissingCount())
	problems.AssertExpectations(t)
}

func TestWorksheetService_RoundTrip(t *testing.T) {
	svc, repo, problems, _ := newWorksheetServiceForTest(0)
	ids := []string{"p-3", "p-1", "p-2"}

	var saved *domain.Worksheet
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Worksheet")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Worksheet)
			saved.ID = "01J9ZQ7W8X3Y4Z5A6B7C8D9E0G"
		}).
		Return(nil).Once()

	_, err := svc.Create(context.Background(), ownerID, &domain.Worksheet{Title: "순서 확인", ProblemIDs: ids})
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, saved.ID).Return(saved, nil).Once()
	// the store returns rows in its own order
	problems.On("FindByIDs", mock.Anything, ids).Return([]*domain.Problem{
		{ID: "p-1"}, {ID: "p-2"}, {ID: "p-3"},
	}, nil).Once()

	detail, err := svc.Get(context.Background(), ownerID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, ids, domain.ProblemIDs(detail.Problems))
	assert.Zero(t, detail.MissingCount())
}

func TestWorksheetService_Get_Access(t *testing.T) {
	private := storedWorksheet("a")
	public := storedWorksheet("a")
	public.IsPublic = true
	ownerless := storedWorksheet("a")
	ownerless.OwnerID = nil

	tests := []struct {
		name      string
		worksheet *domain.Worksheet
		requester string
		wantCode  domain.ErrorCode
	}{
		{"owner reads private", private, ownerID, ""},
		{"stranger reads private", private, strangerID, domain.CodeForbidden},
		{"anonymous reads private", private, "", domain.CodeForbidden},
		{"anonymous reads public", public, "", ""},
		{"anonymous reads ownerless", ownerless, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, problems, _ := newWorksheetServiceForTest(0)
			repo.On("GetByID", mock.Anything, tt.worksheet.ID).Return(tt.worksheet, nil).Once()
			problems.On("FindByIDs", mock.Anything, []string{"a"}).Return([]*domain.Problem{{ID: "a"}}, nil).Maybe()

			_, err := svc.Get(context.Background(), tt.requester, tt.worksheet.ID)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, domain.HasCode(err, tt.wantCode), "got %v", err)
			problems.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
		})
	}
}

func TestWorksheetService_Get_NotFound(t *testing.T) {
	svc, repo, _, _ := newWorksheetServiceForTest(0)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := svc.Get(context.Background(), ownerID, "missing")
	assert.True(t, domain.HasCode(err, domain.CodeWorksheetNotFound))
}

func TestWorksheetService_Get_BatchFailureAborts(t *testing.T) {
	svc, repo, problems, _ := newWorksheetServiceForTest(1)
	ws := storedWorksheet("a", "b")

	repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
	problems.On("FindByIDs", mock.Anything, []string{"a"}).Return([]*domain.Problem{{ID: "a"}}, nil).Maybe()
	problems.On("FindByIDs", mock.Anything, []string{"b"}).Return(nil, errors.New("timeout")).Once()

	_, err := svc.Get(context.Background(), ownerID, ws.ID)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeStore))
}

func TestWorksheetService_Get_ReclassifiesLegacyKind(t *testing.T) {
	defaultRepo := new(MockProblemRepository)
	taggedRepo := new(MockProblemRepository)
	repo := new(MockWorksheetRepository)
	svc := NewWorksheetService(repo, ProblemLookup{
		domain.ProblemIDDefault: defaultRepo,
		domain.ProblemIDTagged:  taggedRepo,
	}, new(MockTransactionManager), 0)

	id := "통합사회_고1_2023_03_학평_4_문제"
	ws := storedWorksheet(id)
	ws.IDKind = ""

	repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
	taggedRepo.On("FindByIDs", mock.Anything, []string{id}).Return([]*domain.Problem{{ID: id}}, nil).Once()

	detail, err := svc.Get(context.Background(), ownerID, ws.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Problems, 1)
	taggedRepo.AssertExpectations(t)
	defaultRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestWorksheetService_Update(t *testing.T) {
	t.Run("owner replaces selection", func(t *testing.T) {
		svc, repo, _, tx := newWorksheetServiceForTest(0)
		ws := storedWorksheet("a")
		ws.IsPublic = true
		tx.On("WithTransaction", mock.Anything).Once()
		repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Worksheet")).Return(nil).Once()

		updated, err := svc.Update(context.Background(), ownerID, ws.ID, &domain.Worksheet{
			Title:      "수정된 제목",
			ProblemIDs: []string{"x", "y"},
			SortRules:  []domain.SortRule{{Field: domain.SortFieldExamYear, Direction: domain.SortDesc}},
		})
		require.NoError(t, err)
		assert.Equal(t, "수정된 제목", updated.Title)
		assert.Equal(t, []string{"x", "y"}, updated.ProblemIDs)
		assert.True(t, updated.IsPublic)
		assert.Equal(t, ownerID, *updated.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, repo, _, tx := newWorksheetServiceForTest(0)
		ws := storedWorksheet("a")
		tx.On("WithTransaction", mock.Anything).Once()
		repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()

		_, err := svc.Update(context.Background(), strangerID, ws.ID, &domain.Worksheet{Title: "t", ProblemIDs: []string{"a"}})
		assert.True(t, domain.HasCode(err, domain.CodeForbidden))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid changes never reach the store", func(t *testing.T) {
		svc, repo, _, tx := newWorksheetServiceForTest(0)
		_, err := svc.Update(context.Background(), ownerID, "id", &domain.Worksheet{Title: "t"})
		assert.True(t, domain.HasCode(err, domain.CodeEmptySelection))
		tx.AssertNotCalled(t, "WithTransaction", mock.Anything)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestWorksheetService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc, repo, _, tx := newWorksheetServiceForTest(0)
		ws := storedWorksheet("a")
		tx.On("WithTransaction", mock.Anything).Once()
		repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
		repo.On("Delete", mock.Anything, ws.ID).Return(nil).Once()

		require.NoError(t, svc.Delete(context.Background(), ownerID, ws.ID))
		repo.AssertExpectations(t)
	})

	t.Run("ownerless worksheet is immutable", func(t *testing.T) {
		svc, repo, _, tx := newWorksheetServiceForTest(0)
		ws := storedWorksheet("a")
		ws.OwnerID = nil
		tx.On("WithTransaction", mock.Anything).Once()
		repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()

		err := svc.Delete(context.Background(), ownerID, ws.ID)
		assert.True(t, domain.HasCode(err, domain.CodeForbidden))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("repository not found passes through", func(t *testing.T) {
		svc, repo, _, tx := newWorksheetServiceForTest(0)
		ws := storedWorksheet("a")
		tx.On("WithTransaction", mock.Anything).Once()
		repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
		repo.On("Delete", mock.Anything, ws.ID).Return(domain.NewWorksheetNotFoundError(ws.ID)).Once()

		err := svc.Delete(context.Background(), ownerID, ws.ID)
		assert.True(t, domain.HasCode(err, domain.CodeWorksheetNotFound))
	})
}

func TestWorksheetService_SetVisibility(t *testing.T) {
	svc, repo, _, tx := newWorksheetServiceForTest(0)
	ws := storedWorksheet("a")
	tx.On("WithTransaction", mock.Anything).Once()
	repo.On("GetByID", mock.Anything, ws.ID).Return(ws, nil).Once()
	repo.On("SetVisibility", mock.Anything, ws.ID, true).Return(nil).Once()

	updated, err := svc.SetVisibility(context.Background(), ownerID, ws.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
	repo.AssertExpectations(t)
}

func TestWorksheetService_Lists(t *testing.T) {
	page := domain.Page{Number: 2, Size: 10}

	t.Run("public", func(t *testing.T) {
		svc, repo, _, _ := newWorksheetServiceForTest(0)
		items := []*domain.Worksheet{storedWorksheet("a")}
		repo.On("ListPublic", mock.Anything, "중간", page).Return(items, 11, nil).Once()

		got, total, err := svc.ListPublic(context.Background(), "중간", page)
		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Equal(t, 11, total)
	})

	t.Run("public store failure", func(t *testing.T) {
		svc, repo, _, _ := newWorksheetServiceForTest(0)
		repo.On("ListPublic", mock.Anything, "", page).Return(nil, 0, errors.New("boom")).Once()

		_, _, err := svc.ListPublic(context.Background(), "", page)
		assert.True(t, domain.HasCode(err, domain.CodeStore))
	})

	t.Run("mine requires a requester", func(t *testing.T) {
		svc, repo, _, _ := newWorksheetServiceForTest(0)
		_, _, err := svc.ListByOwner(context.Background(), "", page)
		assert.True(t, domain.HasCode(err, domain.CodeUnauthorized))
		repo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mine", func(t *testing.T) {
		svc, repo, _, _ := newWorksheetServiceForTest(0)
		repo.On("ListByOwner", mock.Anything, ownerID, page).Return([]*domain.Worksheet{}, 0, nil).Once()

		got, total, err := svc.ListByOwner(context.Background(), ownerID, page)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, total)
	})
}

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunk([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a", "b"}}, chunk([]string{"a", "b"}, 5))
}
