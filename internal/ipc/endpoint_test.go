// Copyright 2016 Michael Carlberg & contributors (polybar)

package ipc

import (
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointDeliversSingleMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polybar.test.sock")

	var mu sync.Mutex
	var got []Message
	e, err := Listen(path, func(m Message) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer e.Close()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	_, err = conn.Write([]byte("cmd:quit\n"))
	require.NoError(t, err)
	conn.Close()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, Message{Kind: Cmd, Command: CommandQuit}, got[0])
	mu.Unlock()
}

func TestEndpointHandlesConcurrentConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polybar.test.sock")

	var mu sync.Mutex
	count := 0
	e, err := Listen(path, func(m Message) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)
	defer e.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := net.Dial("unix", path)
			if err != nil {
				return
			}
			conn.Write([]byte("action:ping\n"))
			conn.Close()
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 5
	}, time.Second, time.Millisecond)
}

func TestEndpointDropsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polybar.test.sock")

	var mu sync.Mutex
	var got []Message
	e, err := Listen(path, func(m Message) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer e.Close()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	conn.Write([]byte("garbage\ncmd:toggle\n"))
	conn.Close()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, CommandToggle, got[0].Command)
	mu.Unlock()
}

func TestEndpointCloseRemovesSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polybar.test.sock")
	e, err := Listen(path, func(Message) {})
	require.NoError(t, err)

	require.NoError(t, e.Close())

	_, err = net.Dial("unix", path)
	assert.Error(t, err)
}
