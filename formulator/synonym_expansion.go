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

// SynonymExpansion is the formulation strategy for enriched topics. Each
// word is joined with its related terms using OR, the per-word groups are
// joined with AND, and the per-topic groups are joined with OR. Every word
// and term is quoted.
//
// A topic {machine: [machine_1], learning: [learning_1]} becomes:
//
//	(("machine" OR "machine_1") AND ("learning" OR "learning_1"))
type SynonymExpansion struct{}

// NewSynonymExpansion creates a new synonym expansion formulator.
func NewSynonymExpansion() *SynonymExpansion {
	return &SynonymExpansion{}
}

// Formulate implements the Formulator interface.
func (s *SynonymExpansion) Formulate(_ context.Context, topics []*topic.Enriched) (string, error) {
	groups := make([]string, 0, len(topics))
	for _, t := range topics {
		words := t.Words()
		wordGroups := make([]string, 0, len(words))
		for _, word := range words {
			tokens := append([]string{word}, t.Terms(word)...)
			wordGroups = append(wordGroups, joinTokens(tokens, OperatorOr, true, false))
		}
		groups = append(groups, joinTokens(wordGroups, OperatorAnd, false, true))
	}
	return joinTokens(groups, OperatorOr, false, true), nil
}

// Name implements the Formulator interface.
func (s *SynonymExpansion) Name() string {
	return "synonym_expansion"
}
