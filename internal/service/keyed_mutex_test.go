// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("same")
			defer km.Unlock("same")
			counter++ // гонка без взаимного исключения
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines, counter)
}

func TestKeyedMutex_DistinctKeysIndependent(t *testing.T) {
	km := newKeyedMutex()

	km.Lock("a")
	defer km.Unlock("a")

	// захват другого ключа не должен блокироваться
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done
}

func TestKeyedMutex_EntriesCleanedUp(t *testing.T) {
	km := newKeyedMutex()

	km.Lock("a")
	km.Unlock("a")
	km.Lock("b")
	km.Unlock("b")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries)
}
