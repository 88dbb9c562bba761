package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"donation-slip-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	transRef := "TXN123"
	a := &domain.VerificationAttempt{
		ID:             uuid.New(),
		TransRef:       &transRef,
		Outcome:        domain.AttemptRejected,
		Classification: "wrong_receiver",
		VendorCode:     "200000",
		ClientIP:       "1.2.3.4",
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO verification_attempts").
		WithArgs(a.ID, a.TransRef, a.Outcome, a.Classification, a.VendorCode, a.ClientIP, a.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := &domain.VerificationAttempt{
		ID:        uuid.New(),
		Outcome:   domain.AttemptFailed,
		ClientIP:  "1.2.3.4",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO verification_attempts").
		WithArgs(a.ID, a.TransRef, a.Outcome, a.Classification, a.VendorCode, a.ClientIP, a.CreatedAt).
		WillReturnError(errors.New("table missing"))

	err = repo.Create(context.Background(), a)
	assert.Error(t, err)
}
