package kv

// Memory is an ephemeral Storage. Its contents vanish on Close.
type Memory struct {
	items map[string]string
}

func NewMemory() *Memory {
	return &Memory{items: map[string]string{}}
}

func (m *Memory) Get(key string) (string, error) {
	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.items[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error {
	m.items = map[string]string{}
	return nil
}
