package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Shared repository errors. Services translate them into apperrors kinds.
var (
	// ErrNotFound is returned when a single-row lookup matches nothing
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert hits a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// psql is the statement builder shared by all repositories
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	EventRepository       *EventRepository
	ParticipantRepository *ParticipantRepository
	FileRepository        *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		EventRepository:       NewEventRepository(db),
		ParticipantRepository: NewParticipantRepository(db),
		FileRepository:        NewFileRepository(db),
	}
}
