// Package keymutex предоставляет мьютекс, шардированный по строковому ключу.
//
// Используется менеджером бронирований как граница сериализации для пары
// (площадка, дата): конкурирующие запросы на один ключ выстраиваются в
// очередь, запросы на разные ключи выполняются параллельно.
package keymutex

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 64

// KeyMutex набор мьютексов, выбираемых по хэшу ключа.
// Фиксированное число шардов ограничивает память: коллизия шардов означает
// лишь лишнюю сериализацию, но не нарушает корректность.
type KeyMutex struct {
	shards []sync.Mutex
}

// New создает KeyMutex с числом шардов по умолчанию
func New() *KeyMutex {
	return NewWithShards(defaultShards)
}

// NewWithShards создает KeyMutex с заданным числом шардов
func NewWithShards(shards int) *KeyMutex {
	if shards <= 0 {
		shards = defaultShards
	}
	return &KeyMutex{shards: make([]sync.Mutex, shards)}
}

// Lock блокирует мьютекс ключа
func (m *KeyMutex) Lock(key string) {
	m.shards[m.index(key)].Lock()
}

// Unlock разблокирует мьютекс ключа
func (m *KeyMutex) Unlock(key string) {
	m.shards[m.index(key)].Unlock()
}

func (m *KeyMutex) index(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(m.shards)))
}
