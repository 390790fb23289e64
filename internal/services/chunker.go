package services

import "strings"

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text into chunks of at most maxChunkSize runes, preferring
// paragraph boundaries, with the trailing overlap runes of each chunk repeated
// at the start of the next so boundary context survives embedding.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder
	dirty := false // current holds content beyond the seeded overlap

	flush := func() {
		if !dirty {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		dirty = false
		if tail := lastRunes(chunks[len(chunks)-1], overlap); tail != "" {
			current.WriteString(tail)
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Oversized paragraphs are cut into rune-safe slices
		runes := []rune(para)
		for len(runes) > maxChunkSize {
			flush()
			current.Reset()
			current.WriteString(string(runes[:maxChunkSize]))
			dirty = true
			flush()
			runes = []rune(strings.TrimSpace(string(runes[maxChunkSize:])))
		}
		para = string(runes)
		if para == "" {
			continue
		}

		if current.Len()+len(para)+2 > maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
		dirty = true
	}

	flush()

	return chunks
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
