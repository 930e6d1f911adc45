package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"exam-worksheet/internal/cache"
	"exam-worksheet/internal/chapter"
	"exam-worksheet/internal/config"
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ChapterService serves the chapter forest of a subject
type ChapterService interface {
	GetTree(ctx context.Context, subject string) ([]*domain.ChapterNode, error)
	InvalidateTree(ctx context.Context, subject string) error
}

type chapterServiceImpl struct {
	tags    domain.TagRepository
	cache   domain.Cache
	cfg     config.ChaptersConfig
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewChapterService creates a ChapterService. cache may be nil, in which case every
// request rebuilds the tree.
func NewChapterService(tags domain.TagRepository, cache domain.Cache, cfg config.ChaptersConfig, ttl time.Duration) ChapterService {
	return &chapterServiceImpl{tags: tags, cache: cache, cfg: cfg, ttl: ttl}
}

// GetTree implements ChapterService. Subjects without tag rows fall back to the
// configured default tree.
func (s *chapterServiceImpl) GetTree(ctx context.Context, subject string) ([]*domain.ChapterNode, error) {
	key := cache.ChapterTreeKey(subject)

	if tree, ok := s.cachedTree(ctx, key); ok {
		return tree, nil
	}

	v, err, _ := s.sfGroup.Do(subject, func() (interface{}, error) {
		// shared by every waiting caller, so one caller's cancellation must not fail the rest
		buildCtx := context.WithoutCancel(ctx)
		tree, err := s.buildTree(buildCtx, subject)
		if err != nil {
			return nil, err
		}
		s.storeTree(buildCtx, key, tree)
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.ChapterNode), nil
}

// InvalidateTree implements ChapterService
func (s *chapterServiceImpl) InvalidateTree(ctx context.Context, subject string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, cache.ChapterTreeKey(subject)); err != nil {
		logger.Get().Error("Failed to invalidate chapter tree cache", zap.Error(err), zap.String("subject", subject))
		return domain.NewInternalError("failed to invalidate chapter tree cache", err)
	}
	return nil
}

func (s *chapterServiceImpl) buildTree(ctx context.Context, subject string) ([]*domain.ChapterNode, error) {
	rows, err := s.tags.ListTagPaths(ctx, subject)
	if err != nil {
		logger.Get().Error("Failed to list tag paths", zap.Error(err), zap.String("subject", subject))
		return nil, domain.NewStoreError("Failed to load chapter tags", err)
	}
	if len(rows) == 0 {
		rows = s.cfg.DefaultChapterRows(subject)
		logger.Get().Debug("Using configured default chapter tree", zap.String("subject", subject), zap.Int("rows", len(rows)))
	}

	tree := chapter.Build(rows, chapter.BuildOptions{SubjectPrefix: s.cfg.SubjectPrefixes[subject]})
	if tree == nil {
		tree = []*domain.ChapterNode{}
	}
	return tree, nil
}

func (s *chapterServiceImpl) cachedTree(ctx context.Context, key string) ([]*domain.ChapterNode, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			// a broken cache degrades to rebuilding
			logger.Get().Warn("Failed to read chapter tree from cache", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}

	var tree []*domain.ChapterNode
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		logger.Get().Warn("Discarding undecodable chapter tree cache entry", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	if tree == nil {
		tree = []*domain.ChapterNode{}
	}
	logger.Get().Debug("Chapter tree cache hit", zap.String("key", key))
	return tree, true
}

func (s *chapterServiceImpl) storeTree(ctx context.Context, key string, tree []*domain.ChapterNode) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(tree)
	if err != nil {
		logger.Get().Error("Failed to marshal chapter tree for caching", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Failed to cache chapter tree", zap.Error(err), zap.String("key", key))
	}
}
