package care

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"sahayata/models"
)

func (s *CareService) ListRoutines(ctx context.Context, userID string) ([]models.RoutineTask, error) {
	return s.Routines.ListByUser(ctx, userID, 0)
}

func (s *CareService) CreateRoutine(ctx context.Context, userID string, in models.RoutineInput) (*models.RoutineTask, error) {
	task := models.RoutineTask{
		Schedule: s.newSchedule(userID, in.Title, in.Description, in.Date, in.Time),
		Category: categoryOrDefault(in.Category),
	}
	task.ID = uuid.New().String()

	if err := s.Routines.Create(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *CareService) UpdateRoutine(ctx context.Context, userID, id string, in models.RoutineInput) (*models.RoutineTask, error) {
	fields := bson.M{
		"title":       strings.TrimSpace(in.Title),
		"description": in.Description,
		"date":        in.Date,
		"time":        in.Time,
		"category":    categoryOrDefault(in.Category),
	}
	return update(ctx, s.Routines, userID, id, fields)
}

func (s *CareService) DeleteRoutine(ctx context.Context, userID, id string) error {
	return remove(ctx, s.Routines, userID, id)
}

func categoryOrDefault(c models.RoutineCategory) models.RoutineCategory {
	if c == "" {
		return models.CategoryOther
	}
	return c
}
