package store

import "sync"

// MemoryBackend keeps encoded collections in a map. Documents are stored as JSON so
// load returns fresh values, not aliases of what was saved.
type MemoryBackend struct {
	mu    sync.Mutex
	docs  map[string][]byte
	codec JSONCodec
	saves int
}

// NewMemoryBackend creates an empty [MemoryBackend].
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: map[string][]byte{}}
}

func (b *MemoryBackend) Load(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}

	b.mu.Lock()
	data, ok := b.docs[name]
	b.mu.Unlock()
	if !ok {
		return ErrAbsent
	}
	return b.codec.Unmarshal(data, v)
}

func (b *MemoryBackend) Save(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := b.codec.Marshal(v)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = data
	b.saves++
	return nil
}

// Raw returns the encoded document for name.
func (b *MemoryBackend) Raw(name string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.docs[name]
	return data, ok
}

// Saves counts successful saves across all collections.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}
