package service

import (
	"context"
	"testing"
	"time"

	"donation-slip-gateway/internal/core/domain"
	"donation-slip-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestAttemptRecorder_Record_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAttemptRepository(ctrl)
	svc := NewAttemptRecorder(mockRepo, zerolog.Nop())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, attempt *domain.VerificationAttempt) error {
			if attempt.Outcome != domain.AttemptRejected {
				t.Errorf("expected rejected, got %s", attempt.Outcome)
			}
			if attempt.Classification != "duplicate_slip" {
				t.Errorf("unexpected classification %q", attempt.Classification)
			}
			close(done)
			return nil
		},
	)

	transRef := "TXN123"
	svc.Record(context.Background(), &domain.VerificationAttempt{
		ID:             uuid.New(),
		TransRef:       &transRef,
		Outcome:        domain.AttemptRejected,
		Classification: "duplicate_slip",
		ClientIP:       "127.0.0.1",
		CreatedAt:      time.Now(),
	})

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("verification attempt not persisted in time")
	}
}

func TestAttemptRecorder_Record_NilRepo(t *testing.T) {
	svc := NewAttemptRecorder(nil, zerolog.Nop())

	// Should not panic
	svc.Record(context.Background(), &domain.VerificationAttempt{
		ID:        uuid.New(),
		Outcome:   domain.AttemptAccepted,
		ClientIP:  "127.0.0.1",
		CreatedAt: time.Now(),
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
