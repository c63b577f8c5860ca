//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package extractor defines the interface for topic extraction capabilities.
package extractor

import (
	"context"

	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// Extractor derives topics from example documents.
type Extractor interface {
	// Extract returns the topics found in docs, each an ordered list of
	// distinct words. Returning no topics is valid and yields an empty
	// search string downstream.
	Extract(ctx context.Context, docs []string) ([]topic.Topic, error)
}
