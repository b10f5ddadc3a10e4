package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicepro/internal/domain"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
	"github.com/jhoicas/invoicepro/internal/infrastructure/memory"
)

func newSession(id string, lastSeen time.Time) *entity.Session {
	return &entity.Session{
		ID:        id,
		Invoice:   entity.NewInvoice(entity.InvoiceOptions{Now: lastSeen}),
		CreatedAt: lastSeen,
		LastSeen:  lastSeen,
	}
}

func TestSessionRepository_CicloDeVida(t *testing.T) {
	repo := memory.NewSessionRepository()
	now := time.Now()

	require.NoError(t, repo.Create(newSession("a", now)))
	assert.ErrorIs(t, repo.Create(newSession("a", now)), domain.ErrInvalidInput, "ID duplicado")
	assert.ErrorIs(t, repo.Create(&entity.Session{ID: "sin-factura"}), domain.ErrInvalidInput)
	assert.Equal(t, 1, repo.Count())

	var seen string
	require.NoError(t, repo.With("a", func(s *entity.Session) error {
		seen = s.ID
		return nil
	}))
	assert.Equal(t, "a", seen)

	require.NoError(t, repo.Delete("a"))
	assert.ErrorIs(t, repo.Delete("a"), domain.ErrNotFound)
	assert.ErrorIs(t, repo.With("a", func(*entity.Session) error { return nil }), domain.ErrNotFound)
	assert.Zero(t, repo.Count())
}

func TestSessionRepository_WithSerializaMutaciones(t *testing.T) {
	repo := memory.NewSessionRepository()
	require.NoError(t, repo.Create(newSession("a", time.Now())))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.With("a", func(s *entity.Session) error {
				s.Invoice.AddItem()
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, repo.With("a", func(s *entity.Session) error {
		assert.Len(t, s.Invoice.Items, workers+1)
		ids := map[string]bool{}
		for _, it := range s.Invoice.Items {
			ids[it.ID] = true
		}
		assert.Len(t, ids, workers+1, "IDs únicos")
		return nil
	}))
}

func TestSessionRepository_DeleteIdle(t *testing.T) {
	repo := memory.NewSessionRepository()
	now := time.Now()
	require.NoError(t, repo.Create(newSession("vieja", now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(newSession("nueva", now)))

	n := repo.DeleteIdle(now.Add(-time.Hour))

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, repo.Count())
	assert.ErrorIs(t, repo.With("vieja", func(*entity.Session) error { return nil }), domain.ErrNotFound)
	assert.NoError(t, repo.With("nueva", func(*entity.Session) error { return nil }))
}
