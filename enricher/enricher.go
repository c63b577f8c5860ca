//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package enricher defines the interface for word enrichment capabilities.
package enricher

import "context"

// Enricher expands a single word with related terms.
type Enricher interface {
	// Enrich returns terms related to word, such as synonyms or domain
	// variants, in relevance order. An empty result means no related
	// terms were found and is not an error.
	Enrich(ctx context.Context, word string) ([]string, error)
}
