package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// benchTree writes n prompts spread over nested categories.
// scripts/generate-prompt-corpus.go produces larger trees of the same shape.
func benchTree(b *testing.B, n int) string {
	b.Helper()
	root := b.TempDir()
	for i := 0; i < n; i++ {
		dir := filepath.Join(root, fmt.Sprintf("Area%d", i%6), fmt.Sprintf("Topic%d", i%10))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.Fatal(err)
		}
		content := fmt.Sprintf("Please review item %d.\nKeep it short.", i)
		if i%2 == 0 {
			content = fmt.Sprintf("---\ntitle: prompt %d\ntags: [bench]\n---\n%s", i, content)
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("prompt-%d.md", i)), []byte(content), 0o644); err != nil {
			b.Fatal(err)
		}
	}
	return root
}

func BenchmarkIndex(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("files=%d", n), func(b *testing.B) {
			s := New(Options{
				RootDir: benchTree(b, n),
				Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				docs, _, err := s.Index(ctx)
				if err != nil {
					b.Fatal(err)
				}
				if len(docs) != n {
					b.Fatalf("indexed %d documents, want %d", len(docs), n)
				}
			}
		})
	}
}
