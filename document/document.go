//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package document defines the document type used for search string generation.
package document

import (
	"time"
)

// Document represents an example document that seeds search string generation.
// Typically this is the title or abstract of a study already known to be
// relevant, but any plain text works.
type Document struct {
	// ID is the unique identifier of the document.
	ID string `json:"id"`

	// Name is the human readable name of the document.
	Name string `json:"name,omitempty"`

	// Content is the plain text content of the document.
	Content string `json:"content"`

	// Metadata carries additional information about the document,
	// such as its source path or file size.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// UpdatedAt is the last update timestamp.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
