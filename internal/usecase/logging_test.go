package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unreachableUsers struct {
	*memoryUsers
	err error
}

func (r unreachableUsers) FindByID(context.Context, int64) (*entity.User, error) {
	return nil, r.err
}

func (r unreachableUsers) Create(context.Context, *entity.User) error {
	return r.err
}

func TestStorageFailuresAreLoggedWithRequestID(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.AddHook(middleware.RequestIDHook{})
	hook := test.NewLocal(log)

	db := newMemoryDB()
	repos := db.Repositories()
	repos.Users = unreachableUsers{memoryUsers: &memoryUsers{db}, err: errors.New("connection refused")}
	store := NewStore(log, validator.NewValidator(), repos, nil, service.NewAuditService(log))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	tests := []struct {
		name string
		call func() error
	}{
		{"get", func() error {
			_, err := store.Users.GetUser(ctx, 1)
			return err
		}},
		{"delete", func() error {
			return store.Users.DeleteUser(ctx, 1)
		}},
		{"create", func() error {
			_, err := store.Users.CreateUser(ctx, &dto.CreateUserRequest{
				MessengerID: "tg-1",
				Name:        "Ann",
				Email:       "a@x.com",
				Phone:       "+100",
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()

			require.Error(t, tt.call())

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Equal(t, "req-42", entry.Data["request_id"])
		})
	}
}
