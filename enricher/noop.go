//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package enricher

import "context"

// Noop is the default enrichment capability. It never finds related terms,
// leaving every word unexpanded.
type Noop struct{}

// NewNoop creates a new no-op enricher.
func NewNoop() *Noop {
	return &Noop{}
}

// Enrich implements the Enricher interface by returning no related terms.
func (n *Noop) Enrich(_ context.Context, _ string) ([]string, error) {
	return []string{}, nil
}
