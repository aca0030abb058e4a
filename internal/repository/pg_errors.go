package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"go-clinic-booking/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the store reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgTooManyConnections   = "53300"
)

type operation int

const (
	opRead operation = iota
	opWrite
	opDelete
)

// Messages for named constraints created by database.InitializeSchema.
var constraintMessages = map[string]string{
	"uq_users_email":                 "email already registered",
	"uq_specializations_name":        "specialization already exists",
	"fk_doctors_specialization":      "specialization does not exist",
	"fk_appointments_user":           "user does not exist",
	"fk_appointments_doctor":         "doctor does not exist",
	"fk_health_certificates_user":    "user does not exist",
	"chk_appointments_status":        "invalid appointment status",
	"chk_health_certificates_status": "invalid certificate status",
}

// translateError maps driver errors onto the apperror taxonomy. Errors it
// does not recognise are returned unchanged.
func translateError(err error, op operation) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		msg := constraintMessages[pgErr.ConstraintName]
		switch {
		case pgErr.Code == pgUniqueViolation:
			if msg == "" {
				msg = "duplicate value"
			}
			return &apperror.Error{Kind: apperror.KindUniqueness, Message: msg, Err: err}
		case pgErr.Code == pgForeignKeyViolation && op == opDelete:
			return &apperror.Error{Kind: apperror.KindDependencyExists, Message: "row is still referenced", Err: err}
		case pgErr.Code == pgForeignKeyViolation:
			if msg == "" {
				msg = "referenced row does not exist"
			}
			return &apperror.Error{Kind: apperror.KindReference, Message: msg, Err: err}
		case pgErr.Code == pgCheckViolation || pgErr.Code == pgNotNullViolation:
			if msg == "" {
				msg = "constraint violated"
			}
			return &apperror.Error{Kind: apperror.KindValidation, Message: msg, Err: err}
		case pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected:
			return &apperror.Error{Kind: apperror.KindConflict, Message: "concurrent update", Err: err}
		case pgErr.Code == pgTooManyConnections,
			strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "57P"):
			return apperror.NewStorageUnavailable("database unavailable", err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.As(err, &netErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err):
		return apperror.NewStorageUnavailable("database unavailable", err)
	}
	return err
}
