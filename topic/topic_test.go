//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichedPreservesInsertionOrder(t *testing.T) {
	e := NewEnriched()
	e.Set("machine", []string{"device"})
	e.Set("learning", []string{"training"})
	e.Set("theory", nil)

	assert.Equal(t, []string{"machine", "learning", "theory"}, e.Words())
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, []string{"device"}, e.Terms("machine"))
	assert.Equal(t, []string{"training"}, e.Terms("learning"))
	assert.Empty(t, e.Terms("theory"))
}

func TestEnrichedDuplicateWordKeepsPositionTakesLatestTerms(t *testing.T) {
	e := NewEnriched()
	e.Set("machine", []string{"first"})
	e.Set("learning", []string{"training"})
	e.Set("machine", []string{"second"})

	assert.Equal(t, []string{"machine", "learning"}, e.Words())
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, []string{"second"}, e.Terms("machine"))
}

func TestEnrichedEmpty(t *testing.T) {
	e := NewEnriched()

	assert.Zero(t, e.Len())
	assert.Empty(t, e.Words())
	assert.Nil(t, e.Terms("missing"))
	assert.False(t, e.Has("missing"))
}

func TestEnrichedHas(t *testing.T) {
	e := NewEnriched()
	e.Set("science", nil)

	assert.True(t, e.Has("science"))
	assert.False(t, e.Has("fiction"))
}

func TestEnrichedWordsIsDetached(t *testing.T) {
	e := NewEnriched()
	e.Set("computer", nil)
	e.Set("science", nil)

	words := e.Words()
	words[0] = "mutated"

	assert.Equal(t, []string{"computer", "science"}, e.Words())
}

func TestEnrichedTermsIsDetached(t *testing.T) {
	e := NewEnriched()
	e.Set("machine", []string{"device", "engine"})

	terms := e.Terms("machine")
	terms[0] = "mutated"

	assert.Equal(t, []string{"device", "engine"}, e.Terms("machine"))
}
