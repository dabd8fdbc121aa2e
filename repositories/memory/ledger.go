package memory

import (
	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
)

// Ledger is the in-memory user store.
type Ledger struct {
	users map[string]*models.User
}

// NewLedger creates an empty user ledger.
func NewLedger() *Ledger {
	return &Ledger{users: make(map[string]*models.User)}
}

var _ repositories.UserRepository = (*Ledger)(nil)

// Get returns the ledger record for the name, if one exists.
func (l *Ledger) Get(name string) (*models.User, bool) {
	u, ok := l.users[name]
	return u, ok
}

// Upsert creates the record on first reference and refreshes the age on
// later ones.
func (l *Ledger) Upsert(name string, age int) *models.User {
	if u, ok := l.users[name]; ok {
		u.Age = age
		return u
	}
	u := models.NewUser(name, age)
	l.users[name] = u
	return u
}
