//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package loader collects documents from sources, optionally in parallel.
package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	"trpc.group/trpc-go/trpc-sesg-go/log"
	"trpc.group/trpc-go/trpc-sesg-go/source"
)

// Collect reads documents from every source and returns them flattened in
// source order. When parallelism is greater than one, sources are read
// concurrently on a worker pool; the returned order is still source order.
func Collect(ctx context.Context, parallelism int, sources []source.Source) ([]*document.Document, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	if parallelism > 1 {
		return collectConcurrent(ctx, parallelism, sources)
	}
	return collectSequential(ctx, sources)
}

// collectSequential reads sources one after another.
func collectSequential(ctx context.Context, sources []source.Source) ([]*document.Document, error) {
	var all []*document.Document
	for i, src := range sources {
		log.Infof("Loading source %d/%d: %s (type: %s)", i+1, len(sources), src.Name(), src.Type())
		docs, err := src.ReadDocuments(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read documents from source %s: %w", src.Name(), err)
		}
		log.Infof("Fetched %d document(s) from source %s", len(docs), src.Name())
		all = append(all, docs...)
	}
	return all, nil
}

// collectConcurrent reads sources concurrently on a worker pool.
func collectConcurrent(ctx context.Context, parallelism int, sources []source.Source) ([]*document.Document, error) {
	pool, err := ants.NewPool(parallelism)
	if err != nil {
		return nil, fmt.Errorf("failed to create source worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	// Each slot is written by exactly one worker, so no mutex is needed.
	results := make([][]*document.Document, len(sources))
	errCh := make(chan error, len(sources))

	for i, src := range sources {
		wg.Add(1)
		// Capture loop variables for the closure to avoid race conditions
		srcIdx := i
		source := src
		err := pool.Submit(func() {
			defer wg.Done()
			log.Infof("Loading source %d/%d: %s (type: %s)", srcIdx+1, len(sources), source.Name(), source.Type())
			docs, err := source.ReadDocuments(ctx)
			if err != nil {
				errCh <- fmt.Errorf("failed to read documents from source %s: %w", source.Name(), err)
				return
			}
			log.Infof("Fetched %d document(s) from source %s", len(docs), source.Name())
			results[srcIdx] = docs
		})
		if err != nil {
			wg.Done()
			errCh <- fmt.Errorf("failed to submit source reading task: %w", err)
		}
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	var all []*document.Document
	for _, docs := range results {
		all = append(all, docs...)
	}
	return all, nil
}
