// Code generated by hand in the style of mockery. DO NOT EDIT lightly.
package mocks

import (
	"context"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) FindLetterForUpdate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, letter string) (*model.LetterStatistic, error) {
	args := m.Called(ctx, tx, studentID, letter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LetterStatistic), args.Error(1)
}

func (m *StatsRepository) CreateLetter(ctx context.Context, tx *gorm.DB, stat *model.LetterStatistic) error {
	args := m.Called(ctx, tx, stat)
	return args.Error(0)
}

func (m *StatsRepository) UpdateLetter(ctx context.Context, tx *gorm.DB, stat *model.LetterStatistic) error {
	args := m.Called(ctx, tx, stat)
	return args.Error(0)
}

func (m *StatsRepository) FindPatternForUpdate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, fromChar, toChar string) (*model.TypingPattern, error) {
	args := m.Called(ctx, tx, studentID, fromChar, toChar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TypingPattern), args.Error(1)
}

func (m *StatsRepository) CreatePattern(ctx context.Context, tx *gorm.DB, pattern *model.TypingPattern) error {
	args := m.Called(ctx, tx, pattern)
	return args.Error(0)
}

func (m *StatsRepository) UpdatePattern(ctx context.Context, tx *gorm.DB, pattern *model.TypingPattern) error {
	args := m.Called(ctx, tx, pattern)
	return args.Error(0)
}
