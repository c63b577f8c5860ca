//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package dir provides directory-based document source implementation.
package dir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	"trpc.group/trpc-go/trpc-sesg-go/document/reader"
	"trpc.group/trpc-go/trpc-sesg-go/source"
	isource "trpc.group/trpc-go/trpc-sesg-go/source/internal/source"
)

// defaultName is the source name used when none is configured.
const defaultName = "Dir"

// Source reads documents from directories, walking each directory tree
// and feeding every supported file through the matching reader.
type Source struct {
	dirPaths        []string
	name            string
	metadata        map[string]any
	fileExtensions  []string
	includePatterns []string
	excludePatterns []string
	recursive       bool
}

// New creates a new directory source for the given directory paths.
// The source is recursive by default.
func New(dirPaths []string, opts ...Option) *Source {
	s := &Source{
		dirPaths:  dirPaths,
		name:      defaultName,
		metadata:  make(map[string]any),
		recursive: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadDocuments walks all configured directories and returns the documents
// of every matched file, in lexical path order per directory.
func (s *Source) ReadDocuments(ctx context.Context) ([]*document.Document, error) {
	readers := isource.GetReaders()

	var documents []*document.Document
	for _, dirPath := range s.dirPaths {
		filePaths, err := s.collectFiles(dirPath)
		if err != nil {
			return nil, fmt.Errorf("failed to collect files from %s: %w", dirPath, err)
		}

		for _, filePath := range filePaths {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			docs, err := s.processFile(readers, dirPath, filePath)
			if err != nil {
				return nil, fmt.Errorf("failed to process file %s: %w", filePath, err)
			}
			documents = append(documents, docs...)
		}
	}
	return documents, nil
}

// collectFiles walks a directory and returns the matched file paths in
// lexical order so repeated runs see documents in a stable order.
func (s *Source) collectFiles(dirPath string) ([]string, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var filePaths []string
	err = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !s.recursive && path != dirPath {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(dirPath, path)
		if err != nil {
			return err
		}

		ok, err := s.matchFile(relPath)
		if err != nil {
			return err
		}
		if ok {
			filePaths = append(filePaths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(filePaths)
	return filePaths, nil
}

// matchFile reports whether a file (by its path relative to the directory
// root) passes the extension and pattern filters.
func (s *Source) matchFile(relPath string) (bool, error) {
	// Patterns always match against slash-separated paths.
	relPath = filepath.ToSlash(relPath)

	if len(s.fileExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(relPath))
		found := false
		for _, allowed := range s.fileExtensions {
			if strings.ToLower(allowed) == ext {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	for _, pattern := range s.excludePatterns {
		ok, err := doublestar.PathMatch(pattern, relPath)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return false, nil
		}
	}

	if len(s.includePatterns) == 0 {
		return true, nil
	}
	for _, pattern := range s.includePatterns {
		ok, err := doublestar.PathMatch(pattern, relPath)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// processFile reads a single file and decorates its documents with file metadata.
func (s *Source) processFile(readers map[string]reader.Reader, dirPath, filePath string) ([]*document.Document, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
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
		doc.Metadata[source.MetaSource] = source.TypeDir
		doc.Metadata[source.MetaDirPath] = dirPath
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
	return source.TypeDir
}

// GetMetadata returns the metadata associated with this source.
func (s *Source) GetMetadata() map[string]any {
	return s.metadata
}
