package ports

import "context"

// DataRepository wipes every table. Used by the testing routes.
type DataRepository interface {
	DeleteAllData(ctx context.Context) error
}

// MaintenanceService performs housekeeping over all stored data.
type MaintenanceService interface {
	// DeleteAllData wipes the database and the content store.
	DeleteAllData(ctx context.Context) error
	// PurgeExpired removes expired sessions and stale unconfirmed accounts.
	PurgeExpired(ctx context.Context) error
}
