//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	"trpc.group/trpc-go/trpc-sesg-go/source"
)

type stubSource struct {
	name  string
	docs  []*document.Document
	err   error
	delay time.Duration
}

func (s *stubSource) ReadDocuments(ctx context.Context) ([]*document.Document, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func (s *stubSource) Name() string                { return s.name }
func (s *stubSource) Type() string                { return "stub" }
func (s *stubSource) GetMetadata() map[string]any { return nil }

func docsOf(contents ...string) []*document.Document {
	docs := make([]*document.Document, 0, len(contents))
	for i, c := range contents {
		docs = append(docs, &document.Document{ID: c, Content: c, Name: c, Metadata: map[string]any{"i": i}})
	}
	return docs
}

func contentsOf(docs []*document.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Content)
	}
	return out
}

func TestCollect_NoSources(t *testing.T) {
	docs, err := Collect(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestCollect_Sequential(t *testing.T) {
	srcs := []source.Source{
		&stubSource{name: "a", docs: docsOf("a1", "a2")},
		&stubSource{name: "b", docs: docsOf("b1")},
	}

	docs, err := Collect(context.Background(), 1, srcs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1"}, contentsOf(docs))
}

func TestCollect_Concurrent_PreservesSourceOrder(t *testing.T) {
	// The first source is the slowest; the result must still lead with it.
	srcs := []source.Source{
		&stubSource{name: "slow", docs: docsOf("s1"), delay: 50 * time.Millisecond},
		&stubSource{name: "fast", docs: docsOf("f1", "f2")},
		&stubSource{name: "mid", docs: docsOf("m1"), delay: 10 * time.Millisecond},
	}

	docs, err := Collect(context.Background(), 4, srcs)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "f1", "f2", "m1"}, contentsOf(docs))
}

func TestCollect_SequentialError(t *testing.T) {
	readErr := errors.New("read failed")
	srcs := []source.Source{
		&stubSource{name: "ok", docs: docsOf("a1")},
		&stubSource{name: "bad", err: readErr},
	}

	_, err := Collect(context.Background(), 1, srcs)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "bad")
}

func TestCollect_ConcurrentError(t *testing.T) {
	readErr := errors.New("read failed")
	srcs := []source.Source{
		&stubSource{name: "ok", docs: docsOf("a1")},
		&stubSource{name: "bad", err: readErr},
	}

	_, err := Collect(context.Background(), 2, srcs)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}
