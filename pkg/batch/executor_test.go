package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunSettlesAllItems(t *testing.T) {
	t.Parallel()

	items := make([]string, 25)
	for i := range items {
		items[i] = fmt.Sprintf("ENT%02d", i)
	}
	failing := map[string]bool{"ENT07": true, "ENT13": true}

	result := Run(context.Background(), items, 10, func(ctx context.Context, item string) error {
		if failing[item] {
			return errors.New("快照数据损坏")
		}
		return nil
	})

	if result.Succeeded != 23 {
		t.Fatalf("期望成功23，得到 %d", result.Succeeded)
	}
	if result.Failed != 2 {
		t.Fatalf("期望失败2，得到 %d", result.Failed)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("期望2条失败记录，得到 %d", len(result.Failures))
	}
	for _, f := range result.Failures {
		if !failing[f.Item] {
			t.Fatalf("意外的失败条目: %s", f.Item)
		}
		if f.Err == nil {
			t.Fatalf("失败记录 %s 缺少错误", f.Item)
		}
	}
}

func TestRunRespectsCeiling(t *testing.T) {
	t.Parallel()

	items := make([]string, 20)
	for i := range items {
		items[i] = fmt.Sprintf("ENT%02d", i)
	}

	var inFlight, maxInFlight int64
	var mu sync.Mutex

	Run(context.Background(), items, 3, func(ctx context.Context, item string) error {
		current := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if current > maxInFlight {
			maxInFlight = current
		}
		mu.Unlock()
		atomic.AddInt64(&inFlight, -1)
		return nil
	})

	if maxInFlight > 3 {
		t.Fatalf("并发超过上限3: %d", maxInFlight)
	}
}

func TestRunProcessesEverythingOnce(t *testing.T) {
	t.Parallel()

	items := []string{"A", "B", "C", "D", "E"}
	var mu sync.Mutex
	seen := make(map[string]int)

	result := Run(context.Background(), items, 2, func(ctx context.Context, item string) error {
		mu.Lock()
		seen[item]++
		mu.Unlock()
		return nil
	})

	if result.Succeeded != len(items) {
		t.Fatalf("期望成功 %d，得到 %d", len(items), result.Succeeded)
	}
	for _, item := range items {
		if seen[item] != 1 {
			t.Fatalf("条目 %s 处理了 %d 次", item, seen[item])
		}
	}
}

func TestRunIsolatesPanics(t *testing.T) {
	t.Parallel()

	items := []string{"A", "B", "C"}
	result := Run(context.Background(), items, 3, func(ctx context.Context, item string) error {
		if item == "B" {
			panic("字段解析崩溃")
		}
		return nil
	})

	if result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("期望成功2失败1，得到 %d/%d", result.Succeeded, result.Failed)
	}
	if result.Failures[0].Item != "B" {
		t.Fatalf("期望失败条目B，得到 %s", result.Failures[0].Item)
	}
}

func TestRunEmptyItems(t *testing.T) {
	t.Parallel()

	result := Run(context.Background(), nil, 5, func(ctx context.Context, item string) error {
		t.Fatal("不应被调用")
		return nil
	})

	if result.Succeeded != 0 || result.Failed != 0 || len(result.Failures) != 0 {
		t.Fatalf("空列表应返回零值结果: %+v", result)
	}
}
