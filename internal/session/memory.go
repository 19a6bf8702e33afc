package session

import "sync"

// Memory keeps entries in a map for the lifetime of the process.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Memory) Clear() error {
	s.mu.Lock()
	s.m = make(map[string]string)
	s.mu.Unlock()
	return nil
}

func (s *Memory) Close() error { return nil }
