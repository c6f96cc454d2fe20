package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is an in-memory Repository for tests and single-node deployments
// without persistence
type Memory struct {
	audit *auditRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		audit: newAuditRepository(),
	}
}

func (m *Memory) ActionAudit() interfaces.ActionAuditRepository {
	return m.audit
}

func (m *Memory) Close() error {
	return nil
}
