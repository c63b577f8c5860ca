//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package source provides internal source utils.
package source

import (
	"path/filepath"

	"trpc.group/trpc-go/trpc-sesg-go/document/reader"

	// Import readers to trigger their init() functions for registration.
	_ "trpc.group/trpc-go/trpc-sesg-go/document/reader/docx"
	_ "trpc.group/trpc-go/trpc-sesg-go/document/reader/markdown"
	_ "trpc.group/trpc-go/trpc-sesg-go/document/reader/pdf"
	_ "trpc.group/trpc-go/trpc-sesg-go/document/reader/text"
)

// GetReaders returns all available readers keyed by file type.
func GetReaders() map[string]reader.Reader {
	return reader.GetAllReaders()
}

// GetFileType determines the file type based on the file extension.
func GetFileType(filePath string) string {
	ext := filepath.Ext(filePath)
	switch ext {
	case ".txt", ".text":
		return "text"
	case ".pdf":
		return "pdf"
	case ".md", ".markdown":
		return "markdown"
	case ".docx", ".doc":
		return "docx"
	default:
		return "text"
	}
}
