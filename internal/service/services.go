package service

import (
	"github.com/deppfellow/emp-records/internal/repository"
	"github.com/deppfellow/emp-records/internal/server"
)

// Services groups every service so handlers receive one value.
type Services struct {
	Record *RecordService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Record: NewRecordService(s, repos.Record),
	}, nil
}
