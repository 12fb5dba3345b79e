package ratelimit

import (
	"sync"
	"time"
)

// Action identifica o balde de tentativas (login e cadastro são contados
// separadamente).
type Action string

const (
	ActionLogin  Action = "login"
	ActionSignup Action = "signup"
)

const (
	Window    = 15 * time.Minute
	MaxLogin  = 5
	MaxSignup = 3
)

type Entry struct {
	Count       int
	WindowStart time.Time
}

// Store guarda o estado de tentativas por chave (endereço + ação).
// A implementação em memória atende a um processo único; deploys com
// múltiplas instâncias devem injetar uma implementação compartilhada.
type Store interface {
	Get(key string) (Entry, bool)
	Put(key string, e Entry)
	Delete(key string)
	Keys() []string
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]Entry)}
}

func (s *memoryStore) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *memoryStore) Put(key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *memoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Limiter aplica a janela deslizante de tentativas de autenticação.
// Limitação conhecida: o estado é "melhor esforço", não transacional;
// requisições simultâneas do mesmo endereço podem contar a mais ou a menos.
type Limiter struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// NewWithClock permite injetar o relógio (usado nos testes).
func NewWithClock(store Store, now func() time.Time) *Limiter {
	return &Limiter{store: store, now: now}
}

func maxFor(action Action) int {
	if action == ActionSignup {
		return MaxSignup
	}
	return MaxLogin
}

// Allow decide se a tentativa do endereço é aceita. Quando negada,
// retorna os minutos restantes até a janela reabrir.
func (l *Limiter) Allow(addr string, action Action) (bool, int) {
	now := l.now()
	l.purge(now)

	key := string(action) + ":" + addr
	e, ok := l.store.Get(key)

	// Sem registro, ou janela expirada: recomeça com count=1
	if !ok || now.Sub(e.WindowStart) > Window {
		l.store.Put(key, Entry{Count: 1, WindowStart: now})
		return true, 0
	}

	if e.Count < maxFor(action) {
		e.Count++
		l.store.Put(key, e)
		return true, 0
	}

	elapsed := now.Sub(e.WindowStart)
	remaining := int((Window - elapsed).Minutes())
	if remaining < 1 {
		remaining = 1
	}
	return false, remaining
}

// purge descarta entradas com janela vencida (expiração preguiçosa,
// sem varredura em background).
func (l *Limiter) purge(now time.Time) {
	for _, key := range l.store.Keys() {
		if e, ok := l.store.Get(key); ok && now.Sub(e.WindowStart) > Window {
			l.store.Delete(key)
		}
	}
}
