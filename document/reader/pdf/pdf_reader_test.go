//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package pdf

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFReader_Metadata(t *testing.T) {
	r := New()
	assert.Equal(t, "PDFReader", r.Name())
	assert.Equal(t, []string{".pdf"}, r.SupportedExtensions())
}

func TestPDFReader_ReadFromReader_InvalidContent(t *testing.T) {
	r := New()
	_, err := r.ReadFromReader("broken", strings.NewReader("not a pdf"))
	assert.Error(t, err)
}

func TestPDFReader_ReadFromFile_NotFound(t *testing.T) {
	r := New()
	_, err := r.ReadFromFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
