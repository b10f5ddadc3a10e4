// Package memory implementa los repositorios en memoria del proceso. Nada se persiste:
// las sesiones desaparecen al eliminarse, al expirar o al terminar el proceso.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoicepro/internal/domain"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *entity.Session
}

// SessionRepository implementa invoicing.SessionRepository con un mapa protegido.
// Cada sesión tiene su propio mutex, así las operaciones sobre una sesión se aplican
// en orden y por completo sin bloquear a las demás.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// NewSessionRepository construye el repositorio vacío.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*sessionEntry)}
}

// Create registra una sesión nueva.
func (r *SessionRepository) Create(s *entity.Session) error {
	if s == nil || s.ID == "" || s.Invoice == nil {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("sesión %s ya existe: %w", s.ID, domain.ErrInvalidInput)
	}
	r.sessions[s.ID] = &sessionEntry{session: s}
	return nil
}

// With ejecuta fn con la sesión bloqueada.
func (r *SessionRepository) With(id string, fn func(s *entity.Session) error) error {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	// La sesión pudo borrarse mientras se esperaba el lock.
	r.mu.RLock()
	_, still := r.sessions[id]
	r.mu.RUnlock()
	if !still {
		return domain.ErrNotFound
	}
	return fn(e.session)
}

// Delete elimina la sesión.
func (r *SessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Count número de sesiones vivas.
func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// DeleteIdle elimina las sesiones cuya última actividad es anterior a before.
func (r *SessionRepository) DeleteIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if !e.mu.TryLock() {
			continue // en uso: no está inactiva
		}
		if e.session.LastSeen.Before(before) {
			delete(r.sessions, id)
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// StartJanitor elimina periódicamente las sesiones inactivas más de ttl hasta que ctx termine.
// onSweep, si no es nil, recibe el número de sesiones vivas tras cada barrido.
func (r *SessionRepository) StartJanitor(ctx context.Context, ttl, every time.Duration, log zerolog.Logger, onSweep func(alive int)) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				if n := r.DeleteIdle(now.Add(-ttl)); n > 0 {
					log.Debug().Int("expiradas", n).Msg("sesiones inactivas eliminadas")
				}
				if onSweep != nil {
					onSweep(r.Count())
				}
			}
		}
	}()
}
