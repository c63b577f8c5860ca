//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package document provides document internal utils.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-sesg-go/document"
)

// CreateDocument creates a new document with the given content and name.
func CreateDocument(content string, name string) *document.Document {
	return &document.Document{
		ID:        GenerateDocumentID(name, content),
		Name:      name,
		Content:   content,
		Metadata:  make(map[string]any),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// GenerateDocumentID generates a unique ID for a document.
// Uses content hash for identification and a UUID for uniqueness.
func GenerateDocumentID(name string, content string) string {
	// Content hash (first 8 bytes = 16 hex chars)
	hash := sha256.Sum256([]byte(content))
	contentHash := hex.EncodeToString(hash[:8])

	return strings.ReplaceAll(name, " ", "_") + "_" + contentHash + "_" + uuid.New().String()
}
