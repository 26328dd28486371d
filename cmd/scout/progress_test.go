package main

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := newBatchProgress(&buf, 4)

	progress.record(false)
	progress.record(true)
	assert.Contains(t, buf.String(), "Queries: 2/4 (50.0%), failed: 1")

	progress.record(false)
	progress.record(false)
	progress.record(false)
	progress.finish()

	output := buf.String()
	assert.Contains(t, output, "4/4 (100.0%)", "done is capped at total")
	assert.NotContains(t, output, "5/4")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestBatchProgress_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	progress := newBatchProgress(&buf, 50)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			progress.record(i%10 == 0)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, progress.done)
	assert.Equal(t, 5, progress.failed)
}

func TestBatchProgress_Nil(t *testing.T) {
	var progress *batchProgress
	assert.NotPanics(t, func() {
		progress.record(true)
		progress.finish()
	})
}
