//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package source defines the interface for document sources.
package source

import (
	"context"

	"trpc.group/trpc-go/trpc-sesg-go/document"
)

// Source types
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

const metaPrefix = "trpc_sesg_"

// Metadata keys
const (
	MetaSource        = metaPrefix + "source"
	MetaFilePath      = metaPrefix + "file_path"
	MetaFileName      = metaPrefix + "file_name"
	MetaFileExt       = metaPrefix + "file_ext"
	MetaFileSize      = metaPrefix + "file_size"
	MetaFileMode      = metaPrefix + "file_mode"
	MetaModifiedAt    = metaPrefix + "modified_at"
	MetaContentLength = metaPrefix + "content_length"
	MetaDirPath       = metaPrefix + "dir_path"
	MetaFileCount     = metaPrefix + "file_count"
)

// Source represents a document source that can provide example documents
// for search string generation.
type Source interface {
	// ReadDocuments reads and returns documents representing the source.
	// This method should handle the specific content type and return any errors.
	ReadDocuments(ctx context.Context) ([]*document.Document, error)

	// Name returns a human-readable name for this source.
	Name() string

	// Type returns the type of this source (e.g., "file", "dir").
	Type() string

	// GetMetadata returns the metadata associated with this source.
	GetMetadata() map[string]any
}
