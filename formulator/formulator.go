//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package formulator defines the interface for search string formulation
// strategies and provides the built-in implementations.
package formulator

import (
	"context"

	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// Operator is a boolean operator placed between joined tokens.
type Operator string

const (
	// OperatorAnd is the conjunctive boolean operator.
	OperatorAnd Operator = "AND"

	// OperatorOr is the disjunctive boolean operator.
	OperatorOr Operator = "OR"
)

// Formulator turns enriched topics into a boolean search string.
type Formulator interface {
	// Formulate builds a search string from the given topics.
	// Topic order and word order within each topic must be preserved
	// in the output. Implementations must not mutate the input.
	Formulate(ctx context.Context, topics []*topic.Enriched) (string, error)

	// Name returns the strategy name reported in logs and telemetry.
	Name() string
}
