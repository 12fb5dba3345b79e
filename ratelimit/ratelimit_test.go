package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignupLimit(t *testing.T) {
	now := time.Now()
	l := NewWithClock(NewMemoryStore(), func() time.Time { return now })

	for i := 1; i <= MaxSignup; i++ {
		ok, _ := l.Allow("10.0.0.1", ActionSignup)
		assert.True(t, ok, "tentativa %d dentro do limite deveria passar", i)
	}

	ok, remaining := l.Allow("10.0.0.1", ActionSignup)
	assert.False(t, ok, "quarta tentativa deveria ser negada")
	assert.GreaterOrEqual(t, remaining, 1)
	assert.LessOrEqual(t, remaining, 15)
}

func TestWindowExpiryResets(t *testing.T) {
	now := time.Now()
	l := NewWithClock(NewMemoryStore(), func() time.Time { return now })

	for i := 0; i < MaxSignup; i++ {
		l.Allow("10.0.0.2", ActionSignup)
	}
	ok, _ := l.Allow("10.0.0.2", ActionSignup)
	assert.False(t, ok)

	// Janela vencida: volta a aceitar e o contador recomeça em 1
	now = now.Add(Window + time.Minute)
	ok, _ = l.Allow("10.0.0.2", ActionSignup)
	assert.True(t, ok)

	// Ainda deve aceitar as tentativas seguintes da nova janela
	for i := 1; i < MaxSignup; i++ {
		ok, _ = l.Allow("10.0.0.2", ActionSignup)
		assert.True(t, ok)
	}
	ok, _ = l.Allow("10.0.0.2", ActionSignup)
	assert.False(t, ok)
}

func TestLoginAndSignupBucketsAreIndependent(t *testing.T) {
	now := time.Now()
	l := NewWithClock(NewMemoryStore(), func() time.Time { return now })

	for i := 0; i < MaxSignup; i++ {
		l.Allow("10.0.0.3", ActionSignup)
	}
	ok, _ := l.Allow("10.0.0.3", ActionSignup)
	assert.False(t, ok, "cadastro estourado")

	// Login do mesmo endereço ainda permitido
	ok, _ = l.Allow("10.0.0.3", ActionLogin)
	assert.True(t, ok, "login não compartilha o balde do cadastro")
}

func TestLoginLimitIsFive(t *testing.T) {
	now := time.Now()
	l := NewWithClock(NewMemoryStore(), func() time.Time { return now })

	for i := 1; i <= MaxLogin; i++ {
		ok, _ := l.Allow("10.0.0.4", ActionLogin)
		assert.True(t, ok)
	}
	ok, _ := l.Allow("10.0.0.4", ActionLogin)
	assert.False(t, ok)
}

func TestDifferentAddressesDoNotInterfere(t *testing.T) {
	now := time.Now()
	l := NewWithClock(NewMemoryStore(), func() time.Time { return now })

	for i := 0; i < MaxSignup; i++ {
		l.Allow("10.0.0.5", ActionSignup)
	}
	ok, _ := l.Allow("10.0.0.6", ActionSignup)
	assert.True(t, ok)
}

func TestLazyPurgeDropsStaleEntries(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	l := NewWithClock(store, func() time.Time { return now })

	l.Allow("10.0.0.7", ActionLogin)
	now = now.Add(Window + time.Minute)
	l.Allow("10.0.0.8", ActionLogin)

	if _, ok := store.Get("login:10.0.0.7"); ok {
		t.Error("entrada vencida deveria ter sido descartada no lookup")
	}
}
