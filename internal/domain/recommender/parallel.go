package recommender

import (
	"container/heap"
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/nutrition-recommender/internal/domain/nutrition"
)

// cancelCheckEvery bounds how many rows a worker scores between context checks.
const cancelCheckEvery = 1024

// Ranker chooses between the sequential scan and a partitioned scan for large tables.
type Ranker struct {
	ParallelThreshold int
	Workers           int
}

// NewRanker derives a ranker from the domain config.
func NewRanker(cfg Config) Ranker {
	return Ranker{ParallelThreshold: cfg.ParallelThreshold, Workers: cfg.Workers}
}

// Rank returns the same result as RankFoods. Tables with at least ParallelThreshold
// rows are split across workers; the returned int is the worker count used.
func (r Ranker) Rank(ctx context.Context, targets nutrition.MacroTargets, table []FoodRecord, k int) ([]RankedFood, int, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	k = min(k, len(table))
	workers := r.workerCount(len(table))
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		return RankFoods(targets, table, k), 1, nil
	}

	target := TargetVector(targets)
	chunk := (len(table) + workers - 1) / workers
	partials := make([][]RankedFood, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(table))
		if start >= end {
			continue
		}
		g.Go(func() error {
			best := make(worstFirst, 0, k+1)
			for i := start; i < end; i++ {
				if (i-start)%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				cand := score(target, table[i], i)
				if len(best) < k {
					heap.Push(&best, cand)
					continue
				}
				if ranksBefore(cand, best[0]) {
					best[0] = cand
					heap.Fix(&best, 0)
				}
			}
			partials[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, workers, err
	}

	merged := make([]RankedFood, 0, workers*k)
	for _, p := range partials {
		merged = append(merged, p...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return ranksBefore(merged[i], merged[j])
	})
	if len(merged) > k {
		merged = merged[:k:k]
	}
	return merged, workers, nil
}

func (r Ranker) workerCount(rows int) int {
	if r.ParallelThreshold <= 0 || rows < r.ParallelThreshold {
		return 1
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return min(workers, rows)
}

// worstFirst is a heap whose root is the lowest ranked candidate kept so far.
type worstFirst []RankedFood

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return ranksBefore(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(RankedFood)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
