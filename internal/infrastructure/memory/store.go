// Package memory implementa los puertos de persistencia en memoria, con transacciones
// de copia e intercambio. Se usa en desarrollo (DB_DRIVER=memory) y en tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// state contiene todas las tablas. Los valores se guardan por copia.
type state struct {
	users          map[string]entity.User
	assignments    map[string][]string // userID -> projectIDs
	projects       map[string]entity.Project
	entries        map[string]entity.TimeEntry
	invoices       map[string]entity.Invoice
	invoiceSeq     map[string]int64  // invoiceID -> orden de creación
	items          map[string]string // timeEntryID -> invoiceID (único)
	paymentMethods map[string]entity.PaymentMethod
	settings       map[string]entity.CompanySettings
	seq            int64
}

func newState() *state {
	return &state{
		users:          map[string]entity.User{},
		assignments:    map[string][]string{},
		projects:       map[string]entity.Project{},
		entries:        map[string]entity.TimeEntry{},
		invoices:       map[string]entity.Invoice{},
		invoiceSeq:     map[string]int64{},
		items:          map[string]string{},
		paymentMethods: map[string]entity.PaymentMethod{},
		settings:       map[string]entity.CompanySettings{},
	}
}

func (s *state) clone() *state {
	return &state{
		users:          maps.Clone(s.users),
		assignments:    maps.Clone(s.assignments),
		projects:       maps.Clone(s.projects),
		entries:        maps.Clone(s.entries),
		invoices:       maps.Clone(s.invoices),
		invoiceSeq:     maps.Clone(s.invoiceSeq),
		items:          maps.Clone(s.items),
		paymentMethods: maps.Clone(s.paymentMethods),
		settings:       maps.Clone(s.settings),
		seq:            s.seq,
	}
}

// Store base de datos en memoria.
// writeMu serializa escritores (transacciones y escrituras sueltas); mu protege el puntero data.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// session es la vista que usan los repos: fuera de tx (tx == nil) o dentro de una.
type session struct {
	store *Store
	tx    *state
}

func (s session) read(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return fn(s.store.data)
}

func (s session) write(ctx context.Context, fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.store.transact(ctx, fn)
}

// transact trabaja sobre una copia y solo la publica si fn no falla.
func (db *Store) transact(ctx context.Context, fn func(st *state) error) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.RLock()
	work := db.data.clone()
	db.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	db.data = work
	db.mu.Unlock()
	return nil
}
