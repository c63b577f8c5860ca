//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package keyword provides a statistical topic extractor.
//
// Each document yields one topic made of the document's highest scoring
// terms, where a term's score is its frequency in the document weighted
// by how rare the term is across the whole document set (tf-idf). The
// extractor needs no model or network access and is fully deterministic.
package keyword

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"trpc.group/trpc-go/trpc-sesg-go/extractor"
	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// Verify that Extractor implements the extractor.Extractor interface.
var _ extractor.Extractor = (*Extractor)(nil)

const (
	// DefaultMaxWords is the default number of words kept per topic.
	DefaultMaxWords = 5
	// DefaultMinWordLength is the default minimum length of a kept word.
	DefaultMinWordLength = 3
)

// Extractor derives one topic per document from term statistics.
type Extractor struct {
	maxWords      int
	minWordLength int
	stopWords     map[string]struct{}
}

// Option represents a functional option for configuring the Extractor.
type Option func(*Extractor)

// WithMaxWords sets the maximum number of words per topic.
// Values below 1 are treated as the default.
func WithMaxWords(maxWords int) Option {
	return func(e *Extractor) {
		if maxWords < 1 {
			maxWords = DefaultMaxWords
		}
		e.maxWords = maxWords
	}
}

// WithMinWordLength sets the minimum rune length a word must have to be
// considered. Values below 1 are treated as 1.
func WithMinWordLength(minWordLength int) Option {
	return func(e *Extractor) {
		if minWordLength < 1 {
			minWordLength = 1
		}
		e.minWordLength = minWordLength
	}
}

// WithStopWords replaces the built-in English stop word list.
func WithStopWords(stopWords []string) Option {
	return func(e *Extractor) {
		e.stopWords = make(map[string]struct{}, len(stopWords))
		for _, w := range stopWords {
			e.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// New creates a new keyword extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		maxWords:      DefaultMaxWords,
		minWordLength: DefaultMinWordLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.stopWords == nil {
		e.stopWords = defaultStopWords()
	}
	return e
}

// Extract implements the extractor.Extractor interface. It returns one
// topic per document that yields at least one term; documents without
// usable terms are skipped. It never returns an error.
func (e *Extractor) Extract(ctx context.Context, docs []string) ([]topic.Topic, error) {
	docTerms := make([][]string, len(docs))
	for i, doc := range docs {
		docTerms[i] = e.tokenize(doc)
	}

	// Document frequency of each distinct term across the whole set.
	df := make(map[string]int)
	for _, terms := range docTerms {
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	var topics []topic.Topic
	for _, terms := range docTerms {
		if len(terms) == 0 {
			continue
		}
		topics = append(topics, e.rank(terms, df, n))
	}
	return topics, nil
}

// rank scores the distinct terms of one document and returns the top
// terms in descending score order, ties broken by first appearance.
func (e *Extractor) rank(terms []string, df map[string]int, totalDocs float64) topic.Topic {
	index := make(map[string]int, len(terms))
	var distinct []string
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		if _, ok := index[term]; !ok {
			index[term] = len(distinct)
			distinct = append(distinct, term)
		}
		counts[term]++
	}

	scores := make(map[string]float64, len(distinct))
	for _, term := range distinct {
		// Smoothed idf keeps scores positive so term frequency still
		// ranks terms when every document shares the same vocabulary.
		idf := math.Log(1 + totalDocs/float64(df[term]))
		scores[term] = float64(counts[term]) * idf
	}

	// Stable sort keeps first-appearance order for equal scores.
	sort.SliceStable(distinct, func(i, j int) bool {
		return scores[distinct[i]] > scores[distinct[j]]
	})

	if len(distinct) > e.maxWords {
		distinct = distinct[:e.maxWords]
	}
	return topic.Topic(distinct)
}

// tokenize lowercases and folds the document, splits it on anything that
// is not a letter or digit, and drops stop words and short tokens.
func (e *Extractor) tokenize(doc string) []string {
	folded := foldDiacritics(strings.ToLower(doc))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) < e.minWordLength {
			continue
		}
		if _, ok := e.stopWords[field]; ok {
			continue
		}
		terms = append(terms, field)
	}
	return terms
}

// foldDiacritics removes combining marks, so "café" becomes "cafe".
// A fresh transformer chain is built per call since chains carry state.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
