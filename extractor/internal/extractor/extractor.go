//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package extractor provides shared helpers for LLM-backed topic extractors.
package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// BuildPrompt renders the topic extraction prompt for the given documents.
func BuildPrompt(topicCount, wordsPerTopic int, docs []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Identify up to %d topics studied by the following documents. "+
		"Each topic is a list of at most %d lowercase keywords. "+
		"Reply with only a JSON array of string arrays, for example "+
		`[["machine","learning"],["computer","science"]].`, topicCount, wordsPerTopic)
	for i, doc := range docs {
		fmt.Fprintf(&sb, "\n\nDocument %d:\n%s", i+1, doc)
	}
	return sb.String()
}

// ParseTopics decodes a model response into topics. A surrounding Markdown
// code fence is stripped before decoding. Blank words and empty topics are
// dropped so downstream formulation never sees empty groups.
func ParseTopics(content string) ([]topic.Topic, error) {
	var raw [][]string
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse topics response: %w", err)
	}
	topics := make([]topic.Topic, 0, len(raw))
	for _, words := range raw {
		t := make(topic.Topic, 0, len(words))
		for _, word := range words {
			word = strings.TrimSpace(word)
			if word == "" {
				continue
			}
			t = append(t, word)
		}
		if len(t) == 0 {
			continue
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// StripCodeFences removes a surrounding Markdown code fence from a model response.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
