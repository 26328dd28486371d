// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package rerank

import (
	"context"
	"fmt"
	"slices"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// entry is one indexed text together with the position of the item it came from.
type entry struct {
	text   string
	vector []float32
	index  int
}

// Neighbor is a single hit returned by Index.Search.
type Neighbor struct {
	Text     string
	Index    int     // Position of the originating item
	Distance float32 // Squared L2 distance to the probe
}

// Index is an ephemeral nearest-neighbour structure over text embeddings.
type Index struct {
	entries []entry
}

// BuildIndex embeds texts in a single batch call and indexes them in order.
// Returns ErrEmptyIndex when texts is empty.
func BuildIndex(ctx context.Context, embedder ai.Embedder, texts []string) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(texts) == 0 {
		return nil, ErrEmptyIndex
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: embedding count mismatch: got %d, want %d",
			core.ErrBackendUnavailable, len(vectors), len(texts))
	}

	entries := make([]entry, len(texts))
	for i := range texts {
		entries[i] = entry{text: texts[i], vector: vectors[i], index: i}
	}
	return &Index{entries: entries}, nil
}

// Len returns the number of indexed texts.
func (x *Index) Len() int {
	return len(x.entries)
}

// Search embeds the probe and returns up to k neighbours, nearest first.
// Equal distances keep the original item order.
func (x *Index) Search(ctx context.Context, embedder ai.Embedder, probe string, k int) ([]Neighbor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	vector, err := embedder.EmbedText(ctx, probe)
	if err != nil {
		return nil, err
	}
	return x.SearchVector(vector, k), nil
}

// SearchVector returns up to k neighbours of vector, nearest first.
func (x *Index) SearchVector(vector []float32, k int) []Neighbor {
	neighbors := make([]Neighbor, len(x.entries))
	for i, e := range x.entries {
		neighbors[i] = Neighbor{
			Text:     e.text,
			Index:    e.index,
			Distance: squaredL2(vector, e.vector),
		}
	}

	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if k >= 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// squaredL2 computes the squared euclidean distance over the common prefix
// of a and b. Dimensions missing from the shorter vector count as zero.
func squaredL2(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	for i := minLen; i < len(a); i++ {
		sum += a[i] * a[i]
	}
	for i := minLen; i < len(b); i++ {
		sum += b[i] * b[i]
	}
	return sum
}
