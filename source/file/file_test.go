//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-sesg-go/source"
)

func TestFileSource_ReadDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abstract.txt")
	require.NoError(t, os.WriteFile(path, []byte("machine learning for code search"), 0o644))

	src := New([]string{path})
	docs, err := src.ReadDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "machine learning for code search", doc.Content)
	assert.Equal(t, source.TypeFile, doc.Metadata[source.MetaSource])
	assert.Equal(t, path, doc.Metadata[source.MetaFilePath])
	assert.Equal(t, "abstract.txt", doc.Metadata[source.MetaFileName])
	assert.Equal(t, ".txt", doc.Metadata[source.MetaFileExt])
	assert.Equal(t, len(doc.Content), doc.Metadata[source.MetaContentLength])
}

func TestFileSource_ReadDocuments_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(first, []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("# beta"), 0o644))

	src := New([]string{first, second})
	docs, err := src.ReadDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "alpha", docs[0].Content)
	assert.Contains(t, docs[1].Content, "beta")
}

func TestFileSource_ReadDocuments_UnknownExtensionReadAsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.dat")
	require.NoError(t, os.WriteFile(path, []byte("plain content"), 0o644))

	src := New([]string{path})
	docs, err := src.ReadDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "plain content", docs[0].Content)
}

func TestFileSource_ReadDocuments_MissingFile(t *testing.T) {
	src := New([]string{filepath.Join(t.TempDir(), "missing.txt")})
	_, err := src.ReadDocuments(context.Background())
	assert.Error(t, err)
}

func TestFileSource_ReadDocuments_Directory(t *testing.T) {
	src := New([]string{t.TempDir()})
	_, err := src.ReadDocuments(context.Background())
	assert.Error(t, err)
}

func TestFileSource_ReadDocuments_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := New([]string{path})
	_, err := src.ReadDocuments(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_Options(t *testing.T) {
	src := New(nil,
		WithName("abstracts"),
		WithMetadata(map[string]any{"review": "slr-42"}),
		WithMetadataValue("stage", "screening"),
	)

	assert.Equal(t, "abstracts", src.Name())
	assert.Equal(t, source.TypeFile, src.Type())
	assert.Equal(t, "slr-42", src.GetMetadata()["review"])
	assert.Equal(t, "screening", src.GetMetadata()["stage"])
}

func TestFileSource_MetadataPropagatesToDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0o644))

	src := New([]string{path}, WithMetadataValue("review", "slr-42"))
	docs, err := src.ReadDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "slr-42", docs[0].Metadata["review"])
}
