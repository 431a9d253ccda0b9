package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LabeledMap упорядоченное отображение метка → значение.
// Порядок меток совпадает с порядком первой вставки.
type LabeledMap[V any] struct {
	labels []string
	values map[string]V
}

// NewLabeledMap создаёт пустое отображение
func NewLabeledMap[V any]() *LabeledMap[V] {
	return &LabeledMap[V]{values: make(map[string]V)}
}

// Set записывает значение; повторная метка сохраняет исходную позицию
func (m *LabeledMap[V]) Set(label string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[label]; !exists {
		m.labels = append(m.labels, label)
	}
	m.values[label] = value
}

// Get возвращает значение по метке
func (m *LabeledMap[V]) Get(label string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[label]
	return v, ok
}

// Labels возвращает метки в порядке вставки
func (m *LabeledMap[V]) Labels() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Len возвращает количество меток
func (m *LabeledMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.labels)
}

// Each обходит пары в порядке вставки
func (m *LabeledMap[V]) Each(fn func(label string, value V)) {
	if m == nil {
		return
	}
	for _, label := range m.labels {
		fn(label, m.values[label])
	}
}

// MarshalJSON кодирует отображение как JSON-объект с сохранением порядка ключей.
func (m *LabeledMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range m.Labels() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[label])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает JSON-объект, сохраняя порядок ключей из документа.
func (m *LabeledMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("labeled map: expected object, got %v", tok)
	}

	m.labels = nil
	m.values = make(map[string]V)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("labeled map: expected string key, got %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("labeled map %q: %w", label, err)
		}
		m.Set(label, v)
	}
	_, err = dec.Token()
	return err
}
