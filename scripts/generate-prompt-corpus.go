//go:build ignore

// Package main generates a synthetic prompt library for benchmarking.
// Usage: go run scripts/generate-prompt-corpus.go -files 5000 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles  = flag.Int("files", 1000, "Number of prompt files to generate")
	outputDir = flag.String("output", "testdata/bench", "Output directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
	depth     = flag.Int("depth", 3, "Maximum category depth")
)

const frontMatterTemplate = `---
title: %s
description: %s
tags: [%s]
---
%s
`

var (
	areas = []string{
		"Tools", "Writing", "Research", "Support", "Engineering", "Marketing",
	}
	topics = []string{
		"Coding", "Review", "Summaries", "Email", "Planning", "Testing",
		"Docs", "Release", "Onboarding", "Triage",
	}
	verbs = []string{
		"review", "summarize", "draft", "explain", "refactor", "translate",
		"outline", "classify", "critique", "rewrite",
	}
	nouns = []string{
		"changelog", "diff", "meeting", "ticket", "proposal", "report",
		"incident", "spec", "newsletter", "query",
	}
	fillers = []string{
		"You are a careful assistant.", "Answer in short paragraphs.",
		"List assumptions before answering.", "Keep the original tone.",
		"Cite the input where possible.", "Ask one clarifying question if needed.",
	}
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d prompts in %s...\n", *numFiles, *outputDir)

	generated := 0
	for i := 0; i < *numFiles; i++ {
		if err := generatePrompt(rng, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating prompt %d: %v\n", i, err)
			continue
		}
		generated++
	}

	fmt.Printf("Generated %d prompts successfully.\n", generated)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// generatePrompt writes one prompt. About half carry front-matter and a
// quarter use the .txt extension.
func generatePrompt(rng *rand.Rand, index int) error {
	dirs := []string{pick(rng, areas)}
	for d := 1; d < 1+rng.Intn(*depth); d++ {
		dirs = append(dirs, pick(rng, topics))
	}
	dir := filepath.Join(append([]string{*outputDir}, dirs...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	verb, noun := pick(rng, verbs), pick(rng, nouns)
	ext := ".md"
	if rng.Intn(4) == 0 {
		ext = ".txt"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Please %s the %s below.\n", verb, noun)
	for n := 0; n < 2+rng.Intn(6); n++ {
		body.WriteString(pick(rng, fillers))
		body.WriteString(" ")
	}

	content := body.String()
	if ext == ".md" && rng.Intn(2) == 0 {
		content = fmt.Sprintf(frontMatterTemplate,
			fmt.Sprintf("%s %s", verb, noun),
			fmt.Sprintf("%s a %s", verb, noun),
			strings.Join([]string{verb, noun}, ", "),
			content)
	}

	name := fmt.Sprintf("%s-%s-%d%s", verb, noun, index, ext)
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}
