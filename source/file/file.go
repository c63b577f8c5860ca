//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package file provides file-based document source implementation.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	"trpc.group/trpc-go/trpc-sesg-go/document/reader"
	"trpc.group/trpc-go/trpc-sesg-go/source"
	isource "trpc.group/trpc-go/trpc-sesg-go/source/internal/source"
)

// defaultName is the source name used when none is configured.
const defaultName = "File"

// Source reads documents from a fixed list of file paths.
type Source struct {
	filePaths []string
	name      string
	metadata  map[string]any
}

// New creates a new file source for the given file paths.
func New(filePaths []string, opts ...Option) *Source {
	s := &Source{
		filePaths: filePaths,
		name:      defaultName,
		metadata:  make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadDocuments reads all configured files and returns their documents.
func (s *Source) ReadDocuments(ctx context.Context) ([]*document.Document, error) {
	readers := isource.GetReaders()

	var documents []*document.Document
	for _, filePath := range s.filePaths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		docs, err := s.processFile(readers, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to process file %s: %w", filePath, err)
		}
		documents = append(documents, docs...)
	}
	return documents, nil
}

// processFile reads a single file and decorates its documents with file metadata.
func (s *Source) processFile(readers map[string]reader.Reader, filePath string) ([]*document.Document, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	fileType := isource.GetFileType(filePath)
	rd, ok := readers[fileType]
	if !ok {
		return nil, fmt.Errorf("no reader registered for file type %s", fileType)
	}

	docs, err := rd.ReadFromFile(filePath)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	for _, doc := range docs {
		if doc.Metadata == nil {
			doc.Metadata = make(map[string]any)
		}
		doc.Metadata[source.MetaSource] = source.TypeFile
		doc.Metadata[source.MetaFilePath] = filePath
		doc.Metadata[source.MetaFileName] = filepath.Base(filePath)
		doc.Metadata[source.MetaFileExt] = ext
		doc.Metadata[source.MetaFileSize] = fileInfo.Size()
		doc.Metadata[source.MetaFileMode] = fileInfo.Mode().String()
		doc.Metadata[source.MetaModifiedAt] = fileInfo.ModTime().UTC()
		doc.Metadata[source.MetaContentLength] = len(doc.Content)
		for k, v := range s.metadata {
			doc.Metadata[k] = v
		}
	}
	return docs, nil
}

// Name returns the name of this source.
func (s *Source) Name() string {
	return s.name
}

// Type returns the type of this source.
func (s *Source) Type() string {
	return source.TypeFile
}

// GetMetadata returns the metadata associated with this source.
func (s *Source) GetMetadata() map[string]any {
	return s.metadata
}
