package utils

import "sync"

// ParallelMap 以最多 concurrency 个 goroutine 并发执行 fn，结果顺序与输入一致。
// 单元素输入直接同步执行，不起 goroutine。
func ParallelMap[T any, R any](items []T, concurrency int, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return []R{fn(items[0])}
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	results := make([]R, len(items))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item T) {
			defer func() {
				<-sem
				wg.Done()
			}()
			results[i] = fn(item)
		}(i, item)
	}

	wg.Wait()
	return results
}
