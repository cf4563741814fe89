package model

import (
	"time"

	"github.com/google/uuid"
)

// Sessao is a server-side auth session. Tokens are opaque random strings;
// expiry is 30 minutes, or 30 days when LembrarMe is set. Expired rows are
// deleted lazily on the next auth check and swept hourly by the worker.
type Sessao struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	LembrarMe bool      `gorm:"not null;default:false"`
	ExpiraEm  time.Time `gorm:"index;not null"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Sessao) TableName() string { return "sessoes" }

// Expirada reports whether the session is past its expiry.
func (s *Sessao) Expirada(now time.Time) bool { return now.After(s.ExpiraEm) }
