//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package keyword

// defaultStopWordList holds common English words that carry no topical
// signal in scientific abstracts.
var defaultStopWordList = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am",
	"an", "and", "any", "are", "aren", "as", "at",
	"be", "because", "been", "before", "being", "below", "between", "both",
	"but", "by",
	"can", "cannot", "could", "couldn",
	"did", "didn", "do", "does", "doesn", "doing", "don", "down", "during",
	"each", "etc",
	"few", "for", "from", "further",
	"had", "hadn", "has", "hasn", "have", "haven", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "however",
	"i", "if", "in", "into", "is", "isn", "it", "its", "itself",
	"just",
	"latter", "less", "let",
	"may", "me", "might", "more", "moreover", "most", "much", "must", "my",
	"myself",
	"no", "nor", "not", "now",
	"of", "off", "on", "once", "only", "or", "other", "our", "ours",
	"ourselves", "out", "over", "own",
	"per",
	"same", "she", "should", "shouldn", "since", "so", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then",
	"there", "therefore", "these", "they", "this", "those", "through",
	"thus", "to", "too",
	"under", "until", "up", "upon", "us", "use", "used", "using",
	"very", "via",
	"was", "wasn", "we", "were", "weren", "what", "when", "where", "whether",
	"which", "while", "who", "whom", "why", "will", "with", "within",
	"without", "won", "would", "wouldn",
	"yet", "you", "your", "yours", "yourself", "yourselves",
}

// defaultStopWords builds the lookup set for the built-in list.
func defaultStopWords() map[string]struct{} {
	stopWords := make(map[string]struct{}, len(defaultStopWordList))
	for _, w := range defaultStopWordList {
		stopWords[w] = struct{}{}
	}
	return stopWords
}
