package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Failure 单个条目的失败记录
type Failure struct {
	Item string
	Err  error
}

// Result 批量执行的汇总结果
type Result struct {
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Run 按固定批次执行条目，批内并发、批间串行
// 条目之间互不影响：单个失败只记录在Failures里，不会中断兄弟条目或后续批次
func Run(ctx context.Context, items []string, ceiling int, fn func(ctx context.Context, item string) error) Result {
	if ceiling <= 0 {
		ceiling = 1
	}

	errs := make([]error, len(items))
	sem := semaphore.NewWeighted(int64(ceiling))

	for start := 0; start < len(items); start += ceiling {
		end := start + ceiling
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				errs[i] = fmt.Errorf("获取并发额度失败: %w", err)
				continue
			}

			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				defer sem.Release(1)
				errs[idx] = runOne(ctx, items[idx], fn)
			}(i)
		}
		// 整批等待完成后才开始下一批
		wg.Wait()
	}

	result := Result{}
	for i, err := range errs {
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, Failure{Item: items[i], Err: err})
			continue
		}
		result.Succeeded++
	}
	return result
}

// runOne 执行单个条目，panic转换为失败记录
func runOne(ctx context.Context, item string, fn func(ctx context.Context, item string) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("处理条目时发生panic: %v", r)
		}
	}()
	return fn(ctx, item)
}
