package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// TableSource supplies the item-item similarity table for a request.
type TableSource interface {
	Table(ctx context.Context, projects []*catalog.Project, matrix UserItemMatrix) (SimilarityTable, error)
}

// ComputeTableSource recomputes the table on every call, bounded by a
// deadline since the pass is quadratic in catalog size.
type ComputeTableSource struct {
	filter  *CollaborativeFilter
	timeout time.Duration
}

func NewComputeTableSource(filter *CollaborativeFilter, timeout time.Duration) *ComputeTableSource {
	return &ComputeTableSource{filter: filter, timeout: timeout}
}

func (s *ComputeTableSource) Table(ctx context.Context, projects []*catalog.Project, matrix UserItemMatrix) (SimilarityTable, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return s.filter.ItemSimilarity(ctx, projects, matrix)
}

// VersionFunc reports a monotonic stamp for a data source.
type VersionFunc func(ctx context.Context) (int64, error)

// CachedTableSource snapshots computed tables in redis, keyed by the
// catalog and interaction-log versions so a write to either invalidates
// the entry implicitly. Cache failures degrade to recomputation.
type CachedTableSource struct {
	client         *redis.Client
	next           TableSource
	ttl            time.Duration
	catalogVersion VersionFunc
	logVersion     VersionFunc
	logger         *zap.Logger
}

func NewCachedTableSource(client *redis.Client, next TableSource, ttl time.Duration, catalogVersion, logVersion VersionFunc, logger *zap.Logger) *CachedTableSource {
	return &CachedTableSource{
		client:         client,
		next:           next,
		ttl:            ttl,
		catalogVersion: catalogVersion,
		logVersion:     logVersion,
		logger:         logger,
	}
}

func (s *CachedTableSource) Table(ctx context.Context, projects []*catalog.Project, matrix UserItemMatrix) (SimilarityTable, error) {
	key, err := s.key(ctx)
	if err != nil {
		s.logger.Warn("similarity cache key unavailable, recomputing", zap.Error(err))
		return s.next.Table(ctx, projects, matrix)
	}

	if payload, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var table SimilarityTable
		if err := json.Unmarshal(payload, &table); err == nil {
			return table, nil
		}
		s.logger.Warn("similarity cache entry corrupt, recomputing", zap.String("key", key))
	}

	table, err := s.next.Table(ctx, projects, matrix)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(table); err == nil {
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("similarity cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return table, nil
}

func (s *CachedTableSource) key(ctx context.Context) (string, error) {
	catalogVer, err := s.catalogVersion(ctx)
	if err != nil {
		return "", err
	}

	logVer, err := s.logVersion(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("recsys:simtable:%d:%d", catalogVer, logVer), nil
}
