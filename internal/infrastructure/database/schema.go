package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// schemaLockKey serializes concurrent InitializeSchema calls across processes.
const schemaLockKey int64 = 0x636c696e6963

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		messenger_id VARCHAR(64) NOT NULL,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		CONSTRAINT uq_users_email UNIQUE (email)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_messenger_id ON users (messenger_id)`,

	`CREATE TABLE IF NOT EXISTS specializations (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		CONSTRAINT uq_specializations_name UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS doctors (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		specialization_id BIGINT NOT NULL,
		in_person_available BOOLEAN NOT NULL DEFAULT TRUE,
		online_available BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT fk_doctors_specialization FOREIGN KEY (specialization_id)
			REFERENCES specializations (id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doctors_specialization_id ON doctors (specialization_id)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		doctor_id BIGINT NOT NULL,
		appointment_type VARCHAR(100) NOT NULL,
		contact_method VARCHAR(50) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT fk_appointments_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE RESTRICT,
		CONSTRAINT fk_appointments_doctor FOREIGN KEY (doctor_id)
			REFERENCES doctors (id) ON DELETE RESTRICT,
		CONSTRAINT chk_appointments_status
			CHECK (status IN ('pending', 'confirmed', 'rejected', 'canceled'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_user_id ON appointments (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_id ON appointments (doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments (status)`,

	`CREATE TABLE IF NOT EXISTS health_certificates (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		reason VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT fk_health_certificates_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE RESTRICT,
		CONSTRAINT chk_health_certificates_status
			CHECK (status IN ('pending', 'approved', 'rejected'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_health_certificates_user_id ON health_certificates (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_health_certificates_status ON health_certificates (status)`,
}

// InitializeSchema creates every table, constraint and index that does not
// exist yet. It is idempotent and safe to run from several processes at
// once: the DDL runs in one transaction holding an advisory lock.
func InitializeSchema(ctx context.Context, db *gorm.DB, log *logrus.Logger) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", schemaLockKey).Error; err != nil {
			return fmt.Errorf("acquire schema lock: %w", err)
		}
		for _, stmt := range schemaStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("Failed to initialize schema: %+v", err)
		return err
	}

	log.Info("Database schema initialized")
	return nil
}
