package datamodel

import (
	auditDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/audit"
	leaveDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/leave"
	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
)

// Models lists every persisted model in dependency order, for gorm AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&userDatamodel.User{},
		&leaveDatamodel.LeaveRequest{},
		&auditDatamodel.AuditLog{},
	}
}
