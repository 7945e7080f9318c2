// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	now := time.Now()

	if strings.ReplaceAll(now.Format("15:04:05"), ":", "") != maketime(now) {
		t.Error("time part incorrect")
	}

	id := Make()
	assert.Len(t, id, 10)
	assert.True(t, Valid(id))
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want bool
	}{
		{"", false},
		{"123456abcd", true},
		{"trace-01_AB", true},
		{"has space", false},
		{"line\nbreak", false},
		{"quote\"", false},
		{strings.Repeat("a", MaxLength), true},
		{strings.Repeat("a", MaxLength+1), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.id), "id %q", tt.id)
	}
}
