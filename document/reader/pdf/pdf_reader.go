//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package pdf provides PDF document reader implementation.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	idocument "trpc.group/trpc-go/trpc-sesg-go/document/internal/document"
	"trpc.group/trpc-go/trpc-sesg-go/document/reader"
)

var (
	// supportedExtensions defines the file extensions supported by this reader.
	supportedExtensions = []string{".pdf"}
)

// init registers the PDF reader with the global registry.
func init() {
	reader.RegisterReader(supportedExtensions, New)
}

// Reader reads PDF documents using the text layer of each page.
type Reader struct{}

// New creates a new PDF reader.
func New() reader.Reader {
	return &Reader{}
}

// ReadFromReader reads PDF content from an io.Reader and returns a list of documents.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	// Read all content so the PDF parser gets a ReaderAt with a known size.
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF content: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	text, err := r.extractTextFromPDFReader(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	doc := idocument.CreateDocument(text, name)
	return []*document.Document{doc}, nil
}

// ReadFromFile reads PDF content from a file path and returns a list of documents.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	// Get file size for the PDF reader.
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	pdfReader, err := pdf.NewReader(file, fileInfo.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	text, err := r.extractTextFromPDFReader(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	// Get file name without extension.
	fileName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	doc := idocument.CreateDocument(text, fileName)
	return []*document.Document{doc}, nil
}

// extractTextFromPDFReader extracts text from all pages of a PDF reader.
func (r *Reader) extractTextFromPDFReader(pdfReader *pdf.Reader) (string, error) {
	var allText strings.Builder
	totalPage := pdfReader.NumPage()

	// Extract text from each page (1-indexed).
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := pdfReader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err == nil && text != "" {
			allText.WriteString(text)
			allText.WriteString("\n")
		}
	}

	return allText.String(), nil
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "PDFReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return supportedExtensions
}
