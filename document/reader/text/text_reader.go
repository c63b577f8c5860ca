//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package text provides text document reader implementation.
package text

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	idocument "trpc.group/trpc-go/trpc-sesg-go/document/internal/document"
	"trpc.group/trpc-go/trpc-sesg-go/document/reader"
)

var (
	// supportedExtensions defines the file extensions supported by this reader.
	supportedExtensions = []string{".txt", ".text"}
)

// init registers the text reader with the global registry.
func init() {
	reader.RegisterReader(supportedExtensions, New)
}

// Reader reads plain text documents.
type Reader struct{}

// New creates a new text reader.
func New() reader.Reader {
	return &Reader{}
}

// ReadFromReader reads text content from an io.Reader and returns a list of documents.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read text content: %w", err)
	}

	doc := idocument.CreateDocument(string(content), name)
	return []*document.Document{doc}, nil
}

// ReadFromFile reads text content from a file path and returns a list of documents.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	// Get file name without extension.
	fileName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	doc := idocument.CreateDocument(string(content), fileName)
	return []*document.Document{doc}, nil
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "TextReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return supportedExtensions
}
