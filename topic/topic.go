//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package topic defines the data types exchanged between search string
// generation stages.
package topic

// Topic is an ordered sequence of distinct words describing one concept
// found in the input documents. The order is determined by the extractor
// that produced it.
type Topic []string

// Enriched maps each word of a topic to the related terms produced by an
// enricher. Unlike a plain map it preserves word order: iteration follows
// the first occurrence of each word, and recording an existing word again
// replaces its terms without moving the word.
type Enriched struct {
	index map[string]int
	words []string
	terms [][]string
}

// NewEnriched creates an empty enriched topic.
func NewEnriched() *Enriched {
	return &Enriched{index: make(map[string]int)}
}

// Set records the related terms for word. A word seen before keeps its
// original position and takes the latest terms.
func (e *Enriched) Set(word string, terms []string) {
	if i, ok := e.index[word]; ok {
		e.terms[i] = terms
		return
	}
	e.index[word] = len(e.words)
	e.words = append(e.words, word)
	e.terms = append(e.terms, terms)
}

// Words returns the topic words in first-occurrence order.
func (e *Enriched) Words() []string {
	words := make([]string, len(e.words))
	copy(words, e.words)
	return words
}

// Terms returns a copy of the related terms recorded for word, detached
// from the internal state like Words. It returns nil when the word has
// not been recorded.
func (e *Enriched) Terms(word string) []string {
	i, ok := e.index[word]
	if !ok {
		return nil
	}
	return append([]string(nil), e.terms[i]...)
}

// Has reports whether word has been recorded.
func (e *Enriched) Has(word string) bool {
	_, ok := e.index[word]
	return ok
}

// Len returns the number of distinct words.
func (e *Enriched) Len() int {
	return len(e.words)
}
