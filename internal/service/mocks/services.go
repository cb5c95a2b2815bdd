// Code generated by hand in the style of mockery. DO NOT EDIT lightly.
package mocks

import (
	"context"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AccessService struct {
	mock.Mock
}

func (m *AccessService) CanAccess(ctx context.Context, studentID, lessonID uuid.UUID) (*model.AccessDecision, error) {
	args := m.Called(ctx, studentID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessDecision), args.Error(1)
}

type ConfigService struct {
	mock.Mock
}

func (m *ConfigService) ResolveForLesson(ctx context.Context, studentID, lessonID uuid.UUID) (*model.EffectiveConfig, error) {
	args := m.Called(ctx, studentID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EffectiveConfig), args.Error(1)
}

type SessionService struct {
	mock.Mock
}

func (m *SessionService) Submit(ctx context.Context, studentID, lessonID uuid.UUID, req *model.SubmitSessionRequest) (*model.SubmitSessionResponse, error) {
	args := m.Called(ctx, studentID, lessonID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmitSessionResponse), args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}
