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

// Option represents a functional option for configuring directory sources.
type Option func(*Source)

// WithName sets the name of the directory source.
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// WithMetadata sets the metadata for the directory source.
// The metadata is copied onto every document the source produces.
func WithMetadata(metadata map[string]any) Option {
	return func(s *Source) {
		for k, v := range metadata {
			s.metadata[k] = v
		}
	}
}

// WithMetadataValue adds a single metadata key-value pair.
func WithMetadataValue(key string, value any) Option {
	return func(s *Source) {
		if s.metadata == nil {
			s.metadata = make(map[string]any)
		}
		s.metadata[key] = value
	}
}

// WithFileExtensions sets the file extensions to filter by.
// Extensions should include the dot prefix (e.g., ".txt", ".md").
func WithFileExtensions(extensions []string) Option {
	return func(s *Source) {
		s.fileExtensions = extensions
	}
}

// WithRecursive sets whether to process subdirectories recursively.
func WithRecursive(recursive bool) Option {
	return func(s *Source) {
		s.recursive = recursive
	}
}

// WithIncludePatterns sets glob patterns a file must match to be read.
// Patterns support doublestar syntax (e.g., "abstracts/**/*.txt") and are
// matched against paths relative to the directory root.
func WithIncludePatterns(patterns ...string) Option {
	return func(s *Source) {
		s.includePatterns = append(s.includePatterns, patterns...)
	}
}

// WithExcludePatterns sets glob patterns for files to skip.
// Exclude patterns take precedence over include patterns.
func WithExcludePatterns(patterns ...string) Option {
	return func(s *Source) {
		s.excludePatterns = append(s.excludePatterns, patterns...)
	}
}
