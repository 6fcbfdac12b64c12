package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoBlock(t *testing.T) {
	text := "You are a helpful assistant.\n---\nnot metadata\n"

	res, err := Parse(text)

	require.NoError(t, err)
	assert.False(t, res.HasBlock)
	assert.Equal(t, text, res.Body)
	assert.Equal(t, Metadata{}, res.Metadata)
}

func TestParse_RecognisedKeys(t *testing.T) {
	text := `---
title: Code Reviewer
description: Reviews pull requests
category: Tools/Review
tags:
  - review
  - git
author: someone
---
Review the diff carefully.
`

	res, err := Parse(text)

	require.NoError(t, err)
	assert.True(t, res.HasBlock)
	assert.Equal(t, "Code Reviewer", res.Metadata.Title)
	assert.Equal(t, "Reviews pull requests", res.Metadata.Description)
	assert.Equal(t, "Tools/Review", res.Metadata.Category)
	assert.Equal(t, TagList{"review", "git"}, res.Metadata.Tags)
	assert.Equal(t, "Review the diff carefully.\n", res.Body)
}

func TestParse_TagsAsCommaSeparatedString(t *testing.T) {
	res, err := Parse("---\ntags: fast, cheap , ,good\n---\nbody")

	require.NoError(t, err)
	assert.Equal(t, TagList{"fast", "cheap", "good"}, res.Metadata.Tags)
	assert.Equal(t, "body", res.Body)
}

func TestParse_TagsInvalidShape(t *testing.T) {
	_, err := Parse("---\ntags:\n  a: b\n---\nbody")

	assert.Error(t, err)
}

func TestParse_EmptyBlock(t *testing.T) {
	res, err := Parse("---\n---\nbody text")

	require.NoError(t, err)
	assert.True(t, res.HasBlock)
	assert.Equal(t, "body text", res.Body)
	assert.Equal(t, Metadata{}, res.Metadata)
}

func TestParse_BlockOnly(t *testing.T) {
	res, err := Parse("---\ntitle: Only Meta\n---")

	require.NoError(t, err)
	assert.True(t, res.HasBlock)
	assert.Equal(t, "Only Meta", res.Metadata.Title)
	assert.Equal(t, "", res.Body)
}

func TestParse_WindowsLineEndings(t *testing.T) {
	res, err := Parse("---\r\ntitle: CRLF\r\n---\r\nbody\r\n")

	require.NoError(t, err)
	assert.Equal(t, "CRLF", res.Metadata.Title)
	assert.Equal(t, "body\r\n", res.Body)
}

func TestParse_ByteOrderMark(t *testing.T) {
	res, err := Parse("\ufeff---\ntitle: BOM\n---\nbody")

	require.NoError(t, err)
	assert.Equal(t, "BOM", res.Metadata.Title)
	assert.Equal(t, "body", res.Body)
}

func TestParse_DelimiterMustStartLine(t *testing.T) {
	// Given: a value containing dashes before the real closing delimiter
	text := "---\ntitle: a---b\n---\nbody"

	res, err := Parse(text)

	require.NoError(t, err)
	assert.Equal(t, "a---b", res.Metadata.Title)
	assert.Equal(t, "body", res.Body)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse("---\ntitle: [unclosed\n---\nbody")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse front-matter")
}

func TestParse_CategoryTrimmed(t *testing.T) {
	res, err := Parse("---\ncategory: /Agents/Coding/\n---\n")

	require.NoError(t, err)
	assert.Equal(t, "Agents/Coding", res.Metadata.Category)
}
