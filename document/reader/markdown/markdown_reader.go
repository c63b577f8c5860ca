//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package markdown provides markdown document reader implementation.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	idocument "trpc.group/trpc-go/trpc-sesg-go/document/internal/document"
	"trpc.group/trpc-go/trpc-sesg-go/document/reader"
)

var (
	// supportedExtensions defines the file extensions supported by this reader.
	supportedExtensions = []string{".md", ".markdown"}
)

// init registers the markdown reader with the global registry.
func init() {
	reader.RegisterReader(supportedExtensions, New)
}

// Reader reads markdown documents and strips the markup, keeping plain text.
type Reader struct {
	md goldmark.Markdown
}

// New creates a new markdown reader.
func New() reader.Reader {
	return &Reader{
		md: goldmark.New(),
	}
}

// ReadFromReader reads markdown content from an io.Reader and returns a list of documents.
func (r *Reader) ReadFromReader(name string, rd io.Reader) ([]*document.Document, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown content: %w", err)
	}

	doc := idocument.CreateDocument(r.extractText(content), name)
	return []*document.Document{doc}, nil
}

// ReadFromFile reads markdown content from a file path and returns a list of documents.
func (r *Reader) ReadFromFile(filePath string) ([]*document.Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown file: %w", err)
	}

	// Get file name without extension.
	fileName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	doc := idocument.CreateDocument(r.extractText(content), fileName)
	return []*document.Document{doc}, nil
}

// extractText extracts text content from markdown source, dropping the markup.
func (r *Reader) extractText(source []byte) string {
	root := r.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate blocks with a newline so words from adjacent
			// paragraphs and headings do not run together.
			if n.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			buf.Write(v.Text(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteString("\n")
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// Name returns the name of this reader.
func (r *Reader) Name() string {
	return "MarkdownReader"
}

// SupportedExtensions returns the file extensions this reader supports.
func (r *Reader) SupportedExtensions() []string {
	return supportedExtensions
}
