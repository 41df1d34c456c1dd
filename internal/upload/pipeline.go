package upload

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
	"github.com/xivmarket/marketboard/internal/store"
)

// DefaultBudget is the wall-clock bound on effect execution, measured
// from authorization.
const DefaultBudget = 5 * time.Second

// Pipeline authorizes an upload and runs the registered behavior chain
// over it. Validators run sequentially and fail fast; effects run
// concurrently under the time budget and their faults never surface to
// the caller.
type Pipeline struct {
	store     store.Store
	hashCache *HashCache
	behaviors []Behavior
	pool      pond.Pool
	budget    time.Duration
}

// NewPipeline creates a pipeline over an ordered behavior registry.
func NewPipeline(s store.Store, behaviors []Behavior, pool pond.Pool, budget time.Duration) *Pipeline {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Pipeline{
		store:     s,
		hashCache: NewHashCache(),
		behaviors: behaviors,
		pool:      pool,
		budget:    budget,
	}
}

// Submit processes one upload submission.
//
// A nil return means the caller sees success. That covers real
// acceptance and the silent drop of flagged uploaders, which must be
// indistinguishable from the outside.
func (p *Pipeline) Submit(ctx context.Context, apiKey string, params *Parameters) error {
	source, err := p.store.RetrieveTrustedSource(ctx, p.hashCache.APIKeyHash(apiKey))
	if err != nil {
		return fmt.Errorf("failed to authorize upload: %w", err)
	}
	if source == nil || !source.CanUpload {
		return domain.ErrForbidden
	}

	if strings.TrimSpace(params.UploaderID) == "" {
		return domain.ErrInvalidUploaderID
	}

	// The raw uploader ID never travels past this point.
	params.UploaderIDHash = HashUploaderID(params.UploaderID)
	params.UploaderID = ""

	flagged, err := p.store.RetrieveFlaggedUploader(ctx, params.UploaderIDHash)
	if err != nil {
		return fmt.Errorf("failed to check flagged uploader: %w", err)
	}
	if flagged != nil {
		return nil
	}

	for _, b := range p.behaviors {
		if b.Kind() != KindValidator || !b.ShouldExecute(params) {
			continue
		}
		if err := b.Execute(ctx, params); err != nil {
			return err
		}
	}

	p.runEffects(ctx, params)

	if err := p.store.IncrementTrustedSourceUploads(ctx, source.APIKeySHA512); err != nil {
		logger.WarnCtx(ctx, "failed to bump trusted source upload count",
			zap.String("source", source.Name), zap.Error(err))
	}

	return nil
}

// runEffects fans the applicable effect behaviors out on the worker
// pool and waits until all finish or the budget elapses. Behaviors
// still in flight at the deadline see the canceled context and are
// abandoned, not interrupted.
func (p *Pipeline) runEffects(ctx context.Context, params *Parameters) {
	ectx, cancel := context.WithTimeout(ctx, p.budget)
	defer cancel()

	var wg sync.WaitGroup
	for _, b := range p.behaviors {
		if b.Kind() != KindEffect || !b.ShouldExecute(params) {
			continue
		}

		b := b
		wg.Add(1)
		p.pool.Submit(func() {
			defer wg.Done()
			if err := b.Execute(ectx, params); err != nil {
				logger.ErrorCtx(ectx, err,
					zap.String("message", "upload behavior failed"),
					zap.String("behavior", b.Name()),
					zap.Int32("world_id", params.WorldID),
					zap.Int32("item_id", params.ItemID))
			}
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ectx.Done():
		logger.WarnCtx(ctx, "upload budget elapsed, abandoning in-flight behaviors",
			zap.Int32("world_id", params.WorldID),
			zap.Int32("item_id", params.ItemID))
	}
}
