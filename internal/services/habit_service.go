package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/models"
	"github.com/terraincognita07/daymate/internal/schedule"
)

type HabitRepository interface {
	FindByIDForUser(habitID uint, userID uint) (models.Habit, error)
	Create(habit *models.Habit) error
	Save(habit *models.Habit) error
	SoftDeleteForUser(habitID uint, userID uint) error
	List(userID uint, filter db.HabitListFilter) ([]models.Habit, error)
	CreateLog(entry *models.HabitLog) error
	DeleteLogForUser(habitID uint, logID uint, userID uint) error
	LogsForDay(userID uint, habitIDs []uint, start time.Time, end time.Time) ([]models.HabitLog, error)
}

type HabitInput struct {
	Title             string
	StartTimeMinutes  int
	EndTimeMinutes    int
	RepeatTimeMinutes int
	RepeatDays        []int
	Activated         *bool
}

type HabitListParams struct {
	Limit         *int
	LastID        *int
	Activated     *bool
	Deleted       bool
	LogTargetDate string
}

type HabitService struct {
	habits    HabitRepository
	location  *time.Location
	presenter presenter
}

func NewHabitService(habits HabitRepository, location *time.Location) *HabitService {
	location = locationOrUTC(location)
	return &HabitService{habits: habits, location: location, presenter: presenter{location: location}}
}

func (service *HabitService) Create(userID uint, input HabitInput) (HabitView, error) {
	days, err := validateHabitInput(input)
	if err != nil {
		return HabitView{}, err
	}

	habit := models.Habit{
		UserID:            userID,
		Title:             strings.TrimSpace(input.Title),
		StartTimeMinutes:  input.StartTimeMinutes,
		EndTimeMinutes:    input.EndTimeMinutes,
		RepeatTimeMinutes: input.RepeatTimeMinutes,
		RepeatDays:        days,
		Activated:         true,
	}
	if input.Activated != nil {
		habit.Activated = *input.Activated
	}

	if err := service.habits.Create(&habit); err != nil {
		return HabitView{}, fmt.Errorf("create habit: %w", err)
	}
	return service.presenter.habit(habit), nil
}

// Update replaces every field. Activated keeps its value when omitted.
func (service *HabitService) Update(userID uint, habitID uint, input HabitInput) (HabitView, error) {
	days, err := validateHabitInput(input)
	if err != nil {
		return HabitView{}, err
	}

	habit, err := service.load(userID, habitID)
	if err != nil {
		return HabitView{}, err
	}

	habit.Title = strings.TrimSpace(input.Title)
	habit.StartTimeMinutes = input.StartTimeMinutes
	habit.EndTimeMinutes = input.EndTimeMinutes
	habit.RepeatTimeMinutes = input.RepeatTimeMinutes
	habit.RepeatDays = days
	if input.Activated != nil {
		habit.Activated = *input.Activated
	}

	if err := service.habits.Save(&habit); err != nil {
		return HabitView{}, fmt.Errorf("save habit: %w", err)
	}
	return service.presenter.habit(habit), nil
}

func (service *HabitService) Delete(userID uint, habitID uint) error {
	if err := service.habits.SoftDeleteForUser(habitID, userID); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: habit %d", ErrNotFound, habitID)
		}
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// Achieve records one completion of the habit at now.
func (service *HabitService) Achieve(userID uint, habitID uint, now time.Time) (HabitLogView, error) {
	habit, err := service.load(userID, habitID)
	if err != nil {
		return HabitLogView{}, err
	}

	entry := models.HabitLog{UserID: userID, HabitID: habit.ID, CompletedAt: now.UTC()}
	if err := service.habits.CreateLog(&entry); err != nil {
		return HabitLogView{}, fmt.Errorf("create habit log: %w", err)
	}
	return HabitLogView{ID: entry.ID, HabitID: entry.HabitID, CompletedAt: service.presenter.at(entry.CompletedAt)}, nil
}

func (service *HabitService) DeleteLog(userID uint, habitID uint, logID uint) error {
	if err := service.habits.DeleteLogForUser(habitID, logID, userID); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: habit log %d", ErrNotFound, logID)
		}
		return fmt.Errorf("delete habit log: %w", err)
	}
	return nil
}

// List pages through habits newest first, each with its logs on the target day (today by default).
func (service *HabitService) List(userID uint, params HabitListParams, now time.Time) ([]HabitWithLogsView, error) {
	validation := &ValidationError{}
	limit := checkLimit(validation, params.Limit, "query", "limit")

	filter := db.HabitListFilter{Limit: limit, Deleted: params.Deleted, Activated: params.Activated}
	if params.LastID != nil {
		if *params.LastID < 1 {
			validation.Add("last_id must be at least 1", "query", "last_id")
		} else {
			filter.LastID = uint(*params.LastID)
		}
	}
	if filter.Activated == nil && !params.Deleted {
		activated := true
		filter.Activated = &activated
	}

	day := DateAtLocation(now, service.location)
	if strings.TrimSpace(params.LogTargetDate) != "" {
		parsed, err := ParseDay(params.LogTargetDate, service.location)
		if err != nil {
			validation.Add("date must use YYYY-MM-DD format", "query", "log_target_date")
		} else {
			day = parsed
		}
	}
	if err := validation.OrNil(); err != nil {
		return nil, err
	}

	habits, err := service.habits.List(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return service.withLogs(userID, habits, day)
}

// DueOn returns the activated habits scheduled on day, with that day's logs.
func (service *HabitService) DueOn(userID uint, day time.Time) ([]HabitWithLogsView, error) {
	activated := true
	habits, err := service.habits.List(userID, db.HabitListFilter{Activated: &activated})
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	due := make([]models.Habit, 0, len(habits))
	for _, habit := range habits {
		if schedule.IsDue(habit.RepeatDays, day) {
			due = append(due, habit)
		}
	}
	return service.withLogs(userID, due, day)
}

func (service *HabitService) withLogs(userID uint, habits []models.Habit, day time.Time) ([]HabitWithLogsView, error) {
	habitIDs := make([]uint, 0, len(habits))
	for _, habit := range habits {
		habitIDs = append(habitIDs, habit.ID)
	}

	start, end := DayRange(day, service.location)
	logs, err := service.habits.LogsForDay(userID, habitIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("load habit logs: %w", err)
	}

	joined := schedule.AttachAll(habits, logs,
		func(habit models.Habit) uint { return habit.ID },
		func(entry models.HabitLog) uint { return entry.HabitID },
	)

	viewDay := schedule.WeekdayOf(start)
	views := make([]HabitWithLogsView, 0, len(joined))
	for _, pair := range joined {
		views = append(views, service.presenter.habitWithLogs(pair, viewDay))
	}
	return views, nil
}

func (service *HabitService) load(userID uint, habitID uint) (models.Habit, error) {
	habit, err := service.habits.FindByIDForUser(habitID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Habit{}, fmt.Errorf("%w: habit %d", ErrNotFound, habitID)
		}
		return models.Habit{}, fmt.Errorf("load habit: %w", err)
	}
	return habit, nil
}

func validateHabitInput(input HabitInput) (schedule.WeekdaySet, error) {
	validation := &ValidationError{}
	checkTitle(validation, input.Title, "body", "title")
	checkRange(validation, input.StartTimeMinutes, 0, MinutesPerDay-1, "body", "start_time_minutes")
	checkRange(validation, input.EndTimeMinutes, 0, MinutesPerDay-1, "body", "end_time_minutes")
	if input.EndTimeMinutes < input.StartTimeMinutes {
		validation.Add("end_time_minutes must not be before start_time_minutes", "body", "end_time_minutes")
	}
	checkRange(validation, input.RepeatTimeMinutes, 0, MinutesPerDay, "body", "repeat_time_minutes")
	days := checkRepeatDays(validation, input.RepeatDays, "body", "repeat_days")
	return days, validation.OrNil()
}

func checkRepeatDays(validation *ValidationError, raw []int, location ...string) schedule.WeekdaySet {
	days, err := schedule.NewWeekdaySet(raw)
	if err == nil {
		return days
	}

	switch {
	case errors.Is(err, schedule.ErrEmptyWeekdays):
		validation.Add("repeat_days must not be empty", location...)
	case errors.Is(err, schedule.ErrDuplicateWeekday):
		validation.Add("repeat_days must not contain duplicates", location...)
	default:
		validation.Add("repeat_days values must be between 0 and 6", location...)
	}
	return 0
}
