//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileType(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"data.txt", "text"},
		{"foo.pdf", "pdf"},
		{"note.md", "markdown"},
		{"doc.docx", "docx"},
		{"unknown.xyz", "text"},
		{"noext", "text"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, GetFileType(c.path), "path %s", c.path)
	}
}

func TestGetReaders_AllTypesRegistered(t *testing.T) {
	readers := GetReaders()

	for _, typeName := range []string{"text", "markdown", "pdf", "docx"} {
		r, ok := readers[typeName]
		require.True(t, ok, "missing reader for type %s", typeName)
		require.NotNil(t, r)
	}
}
