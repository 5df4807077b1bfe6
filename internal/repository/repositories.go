package repository

import (
	"github.com/deppfellow/emp-records/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	Record *RecordRepository
}

// NewRepositories builds the repositories on the server's store handle.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Record: NewRecordRepository(s.Store),
	}
}
