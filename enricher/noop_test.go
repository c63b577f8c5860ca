//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package enricher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop_Enrich(t *testing.T) {
	e := NewNoop()

	for _, word := range []string{"machine", "learning", ""} {
		terms, err := e.Enrich(context.Background(), word)
		require.NoError(t, err)
		assert.Empty(t, terms)
	}
}
