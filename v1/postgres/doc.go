// Package postgres keeps the audit ledger of construction-state inserts.
//
// Every successful insert is recorded with its vehicle, resolved owner and the
// leaf keys it wrote. The ledger is append only and is read back newest first
// by the history endpoint.
//
// # Architecture
//
//   - Postgres struct: the gorm connection with its monitor and retry loops
//   - Ledger struct: Record and ListByVehicle on the construction_state_inserts table
//   - NewPostgres and NewLedger constructors; NewLedger migrates the table
//   - FX module: provides *Postgres and *Ledger and runs the loops while the app is up
//
// # Direct Usage (Without FX)
//
//	pg, err := postgres.NewPostgres(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "secret",
//			DbName:   "digitaltwin",
//			SSLMode:  "disable",
//		},
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer pg.GracefulShutdown()
//
//	ledger, err := postgres.NewLedger(pg)
//	if err != nil {
//		return err
//	}
//
//	rec := postgres.NewInsertRecord("WVW1", "fleet", []string{"color", "doors"})
//	if err := ledger.Record(ctx, &rec); err != nil {
//		return err
//	}
//
//	history, err := ledger.ListByVehicle(ctx, "WVW1", 20)
//
// # Connection Management
//
// MonitorConnection pings the database every 10 seconds and signals
// RetryConnection when a ping fails. RetryConnection reconnects once a second
// until it succeeds and swaps the new pool in atomically, so callers keep
// using DB().
//
// # Error Handling
//
// Ledger methods return errors mapped by TranslateError:
//   - ErrRecordNotFound, ErrDuplicateKey, ErrForeignKey, ErrInvalidData
//   - ErrTimeout for canceled statements and expired deadlines
//   - ErrConnection for connection-class SQLSTATEs and failed connects
//
// ErrTimeout and ErrConnection are joined with the cause, so errors.Is
// matches both.
package postgres
