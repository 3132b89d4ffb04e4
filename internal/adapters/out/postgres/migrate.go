package postgres

import (
	"context"
	"fmt"

	"preclear/internal/adapters/out/postgres/auditrepo"
	"preclear/internal/adapters/out/postgres/exceptionrepo"
	"preclear/internal/adapters/out/postgres/shiprepo"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var auditImmutabilityStatements = []string{
	`CREATE OR REPLACE FUNCTION audit_logs_reject_change() RETURNS trigger AS $$
BEGIN
	RAISE EXCEPTION 'audit_logs is append-only' USING ERRCODE = 'insufficient_privilege';
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS audit_logs_append_only ON audit_logs`,
	`CREATE TRIGGER audit_logs_append_only
	BEFORE UPDATE OR DELETE ON audit_logs
	FOR EACH ROW EXECUTE FUNCTION audit_logs_reject_change()`,
}

// Migrate creates or upgrades the schema. When appRole is not empty, that
// role loses UPDATE, DELETE and TRUNCATE on audit_logs.
func Migrate(ctx context.Context, db *gorm.DB, appRole string) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&shiprepo.ShipmentDTO{},
		&exceptionrepo.ExceptionDTO{},
		&auditrepo.AuditLogDTO{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range auditImmutabilityStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("audit immutability: %w", err)
			}
		}

		if appRole == "" {
			return nil
		}

		role := pq.QuoteIdentifier(appRole)
		grants := []string{
			fmt.Sprintf("GRANT SELECT, INSERT ON audit_logs TO %s", role),
			fmt.Sprintf("REVOKE UPDATE, DELETE, TRUNCATE ON audit_logs FROM %s", role),
		}
		for _, stmt := range grants {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("audit grants for %s: %w", appRole, err)
			}
		}
		return nil
	})
}
