package rag

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// ChunkerConfig controls token-based chunking.
type ChunkerConfig struct {
	ChunkSize    int // tokens per chunk, default 512
	ChunkOverlap int // token overlap between chunks, default 50
}

// Chunker splits document text into token-bounded chunks.
type Chunker struct {
	config   ChunkerConfig
	encoding *tiktoken.Tiktoken
}

// NewChunker creates a Chunker using the cl100k_base encoding.
func NewChunker(config ChunkerConfig) (*Chunker, error) {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 512
	}
	if config.ChunkOverlap <= 0 {
		config.ChunkOverlap = 50
	}
	if config.ChunkOverlap >= config.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			config.ChunkOverlap, config.ChunkSize)
	}

	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("get encoding: %w", err)
	}
	return &Chunker{config: config, encoding: encoding}, nil
}

// CountTokens returns the token count of text.
func (c *Chunker) CountTokens(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// Split cuts text into chunks of at most ChunkSize tokens, accumulating
// whole paragraphs and carrying ChunkOverlap tokens between neighbors.
// A single oversized paragraph is hard-split on token boundaries.
func (c *Chunker) Split(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder
	currentTokens := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, strings.TrimSpace(current.String()))

		// Seed the next chunk with the tail of this one.
		tokens := c.encoding.Encode(current.String(), nil, nil)
		current.Reset()
		currentTokens = 0
		if c.config.ChunkOverlap > 0 && len(tokens) > c.config.ChunkOverlap {
			tail := c.encoding.Decode(tokens[len(tokens)-c.config.ChunkOverlap:])
			current.WriteString(tail)
			current.WriteString("\n\n")
			currentTokens = c.config.ChunkOverlap
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		paraTokens := c.CountTokens(para)

		if paraTokens > c.config.ChunkSize {
			flush()
			chunks = append(chunks, c.hardSplit(para)...)
			continue
		}
		if currentTokens+paraTokens > c.config.ChunkSize {
			flush()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
		currentTokens += paraTokens
	}
	flush()
	return chunks
}

func (c *Chunker) hardSplit(text string) []string {
	tokens := c.encoding.Encode(text, nil, nil)
	step := c.config.ChunkSize - c.config.ChunkOverlap

	var out []string
	for start := 0; start < len(tokens); start += step {
		end := start + c.config.ChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, strings.TrimSpace(c.encoding.Decode(tokens[start:end])))
		if end == len(tokens) {
			break
		}
	}
	return out
}
