//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package docx provides Word document reader implementation.
package docx

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonfva/docxlib"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	idocument "trpc.group/trpc-go/trpc-sesg-go/document/internal/document"
	"trpc.group/trpc-go/trpc-sesg-go/document/reader"
)

var (
	// supportedExtensions defines the file extensions supported by this reader.
	supportedExtensions = []string{".docx"}
)

// init registers the docx reader with the global registry.
func init() {
	reader.RegisterReader(supportedExtensions, New)
}

// Reader reads Word documents paragraph by paragraph.
type Reader struct{}

// New creates a new docx reader.
func New() reader.Reader {
	return &Reader{}
}

// ReadFromReader reads docx content from an io.Reader and returns a list of documents.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	// Read all content so the docx parser gets a ReaderAt with a known size.
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read docx content: %w", err)
	}

	text, err := r.extractText(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	doc := idocument.CreateDocument(text, name)
	return []*document.Document{doc}, nil
}

// ReadFromFile reads docx content from a file path and returns a list of documents.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	text, err := r.extractText(file, fileInfo.Size())
	if err != nil {
		return nil, err
	}

	// Get file name without extension.
	fileName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	doc := idocument.CreateDocument(text, fileName)
	return []*document.Document{doc}, nil
}

// extractText extracts the text of every paragraph, one paragraph per line.
func (r *Reader) extractText(ra io.ReaderAt, size int64) (string, error) {
	docx, err := docxlib.Parse(ra, size)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx file: %w", err)
	}

	var allText strings.Builder
	for _, para := range docx.Paragraphs() {
		var paraText strings.Builder
		for _, child := range para.Children() {
			if child.Run != nil && child.Run.Text != nil {
				paraText.WriteString(child.Run.Text.Text)
			}
			if child.Link != nil {
				paraText.WriteString(child.Link.Run.InstrText)
			}
		}
		if paraText.Len() > 0 {
			allText.WriteString(paraText.String())
			allText.WriteString("\n")
		}
	}

	return allText.String(), nil
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "DocxReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return supportedExtensions
}
