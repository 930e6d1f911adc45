package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"exam-worksheet/internal/cache"
	"exam-worksheet/internal/config"
	"exam-worksheet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSubject = "통합사회"

var testTagRows = []domain.TagPathRow{
	{Subject: testSubject, IDs: []string{"통합사회", "사회-2", "사회-2-1"}, Labels: []string{"통합사회", "II. 자연환경", "1. 기후"}},
	{Subject: testSubject, IDs: []string{"통합사회", "사회-1", "사회-1-2"}, Labels: []string{"통합사회", "I. 인간과 사회", "2. 행복"}},
	{Subject: testSubject, IDs: []string{"통합사회", "사회-1", "사회-1-1"}, Labels: []string{"통합사회", "I. 인간과 사회", "1. 관점"}},
}

var testChaptersConfig = config.ChaptersConfig{
	SubjectPrefixes: map[string]string{testSubject: "통합사회"},
	Defaults: map[string][]config.ChapterPath{
		"한국사": {
			{IDs: []string{"한국사-1", "한국사-1-1"}, Labels: []string{"선사 시대", "구석기"}},
		},
	},
}

func TestChapterService_GetTree_CacheMiss(t *testing.T) {
	tags := new(MockTagRepository)
	mockCache := new(MockCache)
	ttl := 10 * time.Minute
	svc := NewChapterService(tags, mockCache, testChaptersConfig, ttl)
	key := cache.ChapterTreeKey(testSubject)

	mockCache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	tags.On("ListTagPaths", mock.Anything, testSubject).Return(testTagRows, nil).Once()
	mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), ttl).Return(nil).Once()

	tree, err := svc.GetTree(context.Background(), testSubject)
	require.NoError(t, err)

	// subject prefix stripped, roots and children ordered numerically
	require.Len(t, tree, 2)
	assert.Equal(t, "사회-1", tree[0].ID)
	assert.Equal(t, domain.ChapterNodeCategory, tree[0].Kind)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "사회-1-1", tree[0].Children[0].ID)
	assert.Equal(t, "사회-1-2", tree[0].Children[1].ID)
	assert.Equal(t, domain.ChapterNodeItem, tree[0].Children[0].Kind)
	assert.Equal(t, "사회-2", tree[1].ID)

	tags.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestChapterService_GetTree_CacheHit(t *testing.T) {
	tags := new(MockTagRepository)
	mockCache := new(MockCache)
	svc := NewChapterService(tags, mockCache, testChaptersConfig, time.Minute)

	cached := []*domain.ChapterNode{{ID: "사회-1", Label: "I. 인간과 사회", Kind: domain.ChapterNodeItem}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	mockCache.On("Get", mock.Anything, cache.ChapterTreeKey(testSubject)).Return(string(data), nil).Once()

	tree, err := svc.GetTree(context.Background(), testSubject)
	require.NoError(t, err)
	assert.Equal(t, cached, tree)
	tags.AssertNotCalled(t, "ListTagPaths", mock.Anything, mock.Anything)
}

func TestChapterService_GetTree_BrokenCacheRebuilds(t *testing.T) {
	tags := new(MockTagRepository)
	mockCache := new(MockCache)
	svc := NewChapterService(tags, mockCache, testChaptersConfig, time.Minute)
	key := cache.ChapterTreeKey(testSubject)

	mockCache.On("Get", mock.Anything, key).Return("", errors.New("redis down")).Once()
	tags.On("ListTagPaths", mock.Anything, testSubject).Return(testTagRows, nil).Once()
	mockCache.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(errors.New("redis down")).Once()

	tree, err := svc.GetTree(context.Background(), testSubject)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}

func TestChapterService_GetTree_DefaultTree(t *testing.T) {
	tags := new(MockTagRepository)
	svc := NewChapterService(tags, nil, testChaptersConfig, 0)

	tags.On("ListTagPaths", mock.Anything, "한국사").Return([]domain.TagPathRow{}, nil).Once()

	tree, err := svc.GetTree(context.Background(), "한국사")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "한국사-1", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "구석기", tree[0].Children[0].Label)
}

func TestChapterService_GetTree_UnknownSubjectIsEmpty(t *testing.T) {
	tags := new(MockTagRepository)
	svc := NewChapterService(tags, nil, testChaptersConfig, 0)
	tags.On("ListTagPaths", mock.Anything, "물리").Return(nil, nil).Once()

	tree, err := svc.GetTree(context.Background(), "물리")
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestChapterService_GetTree_BuildOutlivesCallerCancellation(t *testing.T) {
	tags := new(MockTagRepository)
	svc := NewChapterService(tags, nil, testChaptersConfig, 0)

	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	tags.On("ListTagPaths", live, testSubject).Return(testTagRows, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := svc.GetTree(ctx, testSubject)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
	tags.AssertExpectations(t)
}

func TestChapterService_GetTree_StoreError(t *testing.T) {
	tags := new(MockTagRepository)
	svc := NewChapterService(tags, nil, testChaptersConfig, 0)
	tags.On("ListTagPaths", mock.Anything, testSubject).Return(nil, errors.New("connection reset")).Once()

	_, err := svc.GetTree(context.Background(), testSubject)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeStore))
}

func TestChapterService_InvalidateTree(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewChapterService(new(MockTagRepository), mockCache, testChaptersConfig, time.Minute)

	mockCache.On("Delete", mock.Anything, cache.ChapterTreeKey(testSubject)).Return(nil).Once()
	require.NoError(t, svc.InvalidateTree(context.Background(), testSubject))

	mockCache.On("Delete", mock.Anything, cache.ChapterTreeKey("한국사")).Return(errors.New("redis down")).Once()
	err := svc.InvalidateTree(context.Background(), "한국사")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))

	assert.NoError(t, NewChapterService(nil, nil, testChaptersConfig, 0).InvalidateTree(context.Background(), testSubject))
	mockCache.AssertExpectations(t)
}
