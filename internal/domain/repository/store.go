package repository

import "context"

// Repositories groups the per-entity repositories bound to one executor,
// either the connection pool or a single transaction.
type Repositories struct {
	Species   SpeciesRepository
	Locations LocationRepository
	Sightings SightingRepository
	Reports   ReportRepository
	Users     UserRepository
	Activity  ActivityRepository
	Dashboard DashboardRepository
	Lookups   LookupRepository
}

// Store is the unit of work. Repos are bound to the pool; WithinTx runs fn
// against repositories bound to one transaction which commits when fn
// returns nil and rolls back on error or panic.
type Store interface {
	Repos() Repositories
	WithinTx(ctx context.Context, fn func(tx Repositories) error) error
	Health(ctx context.Context) error
}
