//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package sesg

import (
	"trpc.group/trpc-go/trpc-sesg-go/enricher"
	"trpc.group/trpc-go/trpc-sesg-go/formulator"
)

// Option represents a functional option for configuring the Generator.
type Option func(*Generator)

// WithEnricher sets the word enrichment capability.
// The default is the no-op enricher, which finds no related terms.
func WithEnricher(e enricher.Enricher) Option {
	return func(g *Generator) {
		g.enricher = e
	}
}

// WithFormulator sets the formulation strategy.
// The default is the conjunction formulator, which ignores enrichment terms.
func WithFormulator(f formulator.Formulator) Option {
	return func(g *Generator) {
		g.formulator = f
	}
}

// WithSourceParallelism configures how many sources GenerateFromSources
// reads in parallel. A value of 1 means sequential reading.
// The default is min(4, len(sources)) when value is not specified (=0).
func WithSourceParallelism(n int) Option {
	return func(g *Generator) {
		g.sourceParallelism = n
	}
}
