package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marketml/scorekit/core"
)

const (
	defaultBatchChunkSize   = 64
	defaultBatchConcurrency = 4
)

// BatchOptions 批量打分参数
type BatchOptions struct {
	// ChunkSize 每次请求携带的向量条数，0 表示默认 64
	ChunkSize int
	// Concurrency 并发请求数，0 表示默认 4
	Concurrency int
	// ModelName / ModelVersion 透传给底层请求
	ModelName    string
	ModelVersion string
}

// BatchScore 将大批向量切块并发送往打分服务，结果按输入顺序返回。
// 任一分块失败则整批失败（errgroup 会取消其余在途请求）。
func BatchScore(ctx context.Context, scorer core.Scorer, instances [][]float64, opts *BatchOptions) ([]float64, error) {
	if len(instances) == 0 {
		return nil, nil
	}
	if opts == nil {
		opts = &BatchOptions{}
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultBatchChunkSize
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	predictions := make([]float64, len(instances))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(instances); start += chunkSize {
		end := start + chunkSize
		if end > len(instances) {
			end = len(instances)
		}
		start, end := start, end
		g.Go(func() error {
			resp, err := scorer.Score(gctx, &core.ScoreRequest{
				Instances:    instances[start:end],
				ModelName:    opts.ModelName,
				ModelVersion: opts.ModelVersion,
			})
			if err != nil {
				return err
			}
			if len(resp.Predictions) != end-start {
				return scorerError("batch: chunk prediction count mismatch: expected %d, got %d", end-start, len(resp.Predictions))
			}
			copy(predictions[start:end], resp.Predictions)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return predictions, nil
}
