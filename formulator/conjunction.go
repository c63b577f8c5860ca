//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package formulator

import (
	"context"

	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// Conjunction is the default formulation strategy. It joins the words of
// each topic with AND, quoting every word, and joins the per-topic groups
// with OR. Enrichment terms are ignored, which makes it the right choice
// when the enricher is the no-op default.
//
// Two topics {machine, learning} and {computer, science} become:
//
//	("machine" AND "learning") OR ("computer" AND "science")
type Conjunction struct{}

// NewConjunction creates a new conjunction formulator.
func NewConjunction() *Conjunction {
	return &Conjunction{}
}

// Formulate implements the Formulator interface.
func (c *Conjunction) Formulate(_ context.Context, topics []*topic.Enriched) (string, error) {
	groups := make([]string, 0, len(topics))
	for _, t := range topics {
		groups = append(groups, joinTokens(t.Words(), OperatorAnd, true, false))
	}
	return joinTokens(groups, OperatorOr, false, true), nil
}

// Name implements the Formulator interface.
func (c *Conjunction) Name() string {
	return "conjunction"
}
