package models

type RoutineCategory string

const (
	CategoryMedication RoutineCategory = "medication"
	CategoryExercise   RoutineCategory = "exercise"
	CategoryMeal       RoutineCategory = "meal"
	CategoryOther      RoutineCategory = "other"
)

// RoutineTask is a daily-care task such as a medication dose or a meal.
type RoutineTask struct {
	Schedule `bson:",inline"`
	Category RoutineCategory `bson:"category" json:"category"`
}

// RoutineInput is the create/update payload.
type RoutineInput struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date" binding:"required,isodate"`
	Time        string          `json:"time" binding:"required,hhmm"`
	Category    RoutineCategory `json:"category" binding:"omitempty,oneof=medication exercise meal other"`
}
