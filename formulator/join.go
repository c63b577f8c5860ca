//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package formulator

import "strings"

// joinTokens joins tokens with the given operator, optionally transforming
// each token first. Double quotes are applied before parentheses, so a token
// transformed with both becomes ("token"). An empty token list yields an
// empty string; a single token carries no operator.
func joinTokens(tokens []string, op Operator, quote, group bool) string {
	transformed := make([]string, len(tokens))
	for i, token := range tokens {
		if quote {
			token = `"` + token + `"`
		}
		if group {
			token = "(" + token + ")"
		}
		transformed[i] = token
	}
	return strings.Join(transformed, " "+string(op)+" ")
}
