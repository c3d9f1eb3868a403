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

type RoutineRepository interface {
	FindByIDForUser(routineID uint, userID uint) (models.Routine, error)
	Create(routine *models.Routine) error
	Save(routine *models.Routine) error
	SoftDeleteForUser(routineID uint, userID uint) error
	List(userID uint, deleted bool) ([]models.Routine, error)
	Elements(userID uint, routineIDs []uint) ([]models.RoutineElement, error)
	CreateElement(element *models.RoutineElement) error
	SaveElement(element *models.RoutineElement) error
	DeleteElements(userID uint, routineID uint, elementIDs []uint) error
	LogsForDay(userID uint, routineIDs []uint, start time.Time, end time.Time) ([]models.RoutineLog, error)
	CreateLog(entry *models.RoutineLog) error
	SaveLog(entry *models.RoutineLog) error
}

type RoutineElementInput struct {
	Title           string
	DurationMinutes int
}

type RoutineInput struct {
	Title            string
	StartTimeMinutes int
	RepeatDays       []int
	Elements         []RoutineElementInput
}

// RoutinePatch leaves nil fields untouched. A non-nil Elements replaces the element list by diff.
type RoutinePatch struct {
	Title            *string
	StartTimeMinutes *int
	RepeatDays       *[]int
	Elements         *[]schedule.ElementUpdate
}

type RoutineLogEntry struct {
	ElementID       uint
	DurationMinutes int
	IsSkipped       bool
}

type elementKey struct {
	RoutineID uint
	ElementID uint
}

type RoutineService struct {
	routines  RoutineRepository
	location  *time.Location
	presenter presenter
}

func NewRoutineService(routines RoutineRepository, location *time.Location) *RoutineService {
	location = locationOrUTC(location)
	return &RoutineService{routines: routines, location: location, presenter: presenter{location: location}}
}

// Create stores the routine and numbers its elements 1..n in submission order.
func (service *RoutineService) Create(userID uint, input RoutineInput, now time.Time) (RoutineView, error) {
	validation := &ValidationError{}
	checkTitle(validation, input.Title, "body", "title")
	checkRange(validation, input.StartTimeMinutes, 0, MinutesPerDay-1, "body", "start_time_minutes")
	days := checkRepeatDays(validation, input.RepeatDays, "body", "repeat_days")
	for index, element := range input.Elements {
		checkTitle(validation, element.Title, "body", "routine_elements", fmt.Sprint(index), "title")
		checkRange(validation, element.DurationMinutes, 0, MinutesPerDay, "body", "routine_elements", fmt.Sprint(index), "duration_minutes")
	}
	if err := validation.OrNil(); err != nil {
		return RoutineView{}, err
	}

	routine := models.Routine{
		UserID:           userID,
		Title:            strings.TrimSpace(input.Title),
		StartTimeMinutes: input.StartTimeMinutes,
		RepeatDays:       days,
	}
	if err := service.routines.Create(&routine); err != nil {
		return RoutineView{}, fmt.Errorf("create routine: %w", err)
	}

	for index, elementInput := range input.Elements {
		element := models.RoutineElement{
			UserID:          userID,
			RoutineID:       routine.ID,
			Title:           strings.TrimSpace(elementInput.Title),
			Order:           index + 1,
			DurationMinutes: elementInput.DurationMinutes,
		}
		if err := service.routines.CreateElement(&element); err != nil {
			return RoutineView{}, fmt.Errorf("create routine element: %w", err)
		}
	}

	return service.single(userID, routine, now)
}

func (service *RoutineService) Get(userID uint, routineID uint, now time.Time) (RoutineView, error) {
	routine, err := service.load(userID, routineID)
	if err != nil {
		return RoutineView{}, err
	}
	return service.single(userID, routine, now)
}

// List returns every routine with today's logs. With deleted set it returns the soft-deleted ones instead.
func (service *RoutineService) List(userID uint, deleted bool, now time.Time) ([]RoutineView, error) {
	routines, err := service.routines.List(userID, deleted)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return service.withLogs(userID, routines, now)
}

// DueOn returns the routines scheduled on day, with that day's logs.
func (service *RoutineService) DueOn(userID uint, day time.Time) ([]RoutineView, error) {
	routines, err := service.routines.List(userID, false)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	due := make([]models.Routine, 0, len(routines))
	for _, routine := range routines {
		if schedule.IsDue(routine.RepeatDays, day) {
			due = append(due, routine)
		}
	}
	return service.withLogs(userID, due, day)
}

// Update applies a partial update. When elements are given, the stored list is diffed against
// them: matched ids are updated, entries without id are created and everything else is deleted.
func (service *RoutineService) Update(userID uint, routineID uint, patch RoutinePatch, now time.Time) (RoutineView, error) {
	validation := &ValidationError{}
	if patch.Title != nil {
		checkTitle(validation, *patch.Title, "body", "title")
	}
	if patch.StartTimeMinutes != nil {
		checkRange(validation, *patch.StartTimeMinutes, 0, MinutesPerDay-1, "body", "start_time_minutes")
	}
	var days schedule.WeekdaySet
	if patch.RepeatDays != nil {
		days = checkRepeatDays(validation, *patch.RepeatDays, "body", "repeat_days")
	}
	if patch.Elements != nil {
		validateElementUpdates(validation, *patch.Elements)
	}
	if err := validation.OrNil(); err != nil {
		return RoutineView{}, err
	}

	routine, err := service.load(userID, routineID)
	if err != nil {
		return RoutineView{}, err
	}

	if patch.Title != nil {
		routine.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.StartTimeMinutes != nil {
		routine.StartTimeMinutes = *patch.StartTimeMinutes
	}
	if patch.RepeatDays != nil {
		routine.RepeatDays = days
	}
	if err := service.routines.Save(&routine); err != nil {
		return RoutineView{}, fmt.Errorf("save routine: %w", err)
	}

	if patch.Elements != nil {
		if err := service.applyElementDiff(userID, routine.ID, *patch.Elements); err != nil {
			return RoutineView{}, err
		}
	}

	return service.single(userID, routine, now)
}

func (service *RoutineService) applyElementDiff(userID uint, routineID uint, updates []schedule.ElementUpdate) error {
	stored, err := service.routines.Elements(userID, []uint{routineID})
	if err != nil {
		return fmt.Errorf("load routine elements: %w", err)
	}

	existing := make([]schedule.ExistingElement, 0, len(stored))
	byID := make(map[uint]models.RoutineElement, len(stored))
	for _, element := range stored {
		existing = append(existing, schedule.ExistingElement{ID: element.ID, Order: element.Order})
		byID[element.ID] = element
	}

	plan, err := schedule.PlanElementDiff(existing, updates)
	if err != nil {
		if errors.Is(err, schedule.ErrUnknownElement) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return err
	}

	for _, update := range plan.Updates {
		element := byID[*update.ID]
		if update.Title != nil {
			element.Title = strings.TrimSpace(*update.Title)
		}
		if update.Order != nil {
			element.Order = *update.Order
		}
		if update.DurationMinutes != nil {
			element.DurationMinutes = *update.DurationMinutes
		}
		if err := service.routines.SaveElement(&element); err != nil {
			return fmt.Errorf("save routine element: %w", err)
		}
	}

	for _, create := range plan.Creates {
		element := models.RoutineElement{
			UserID:          userID,
			RoutineID:       routineID,
			Title:           strings.TrimSpace(*create.Title),
			Order:           *create.Order,
			DurationMinutes: *create.DurationMinutes,
		}
		if err := service.routines.CreateElement(&element); err != nil {
			return fmt.Errorf("create routine element: %w", err)
		}
	}

	if err := service.routines.DeleteElements(userID, routineID, plan.Deletes); err != nil {
		return fmt.Errorf("delete routine elements: %w", err)
	}
	return nil
}

func (service *RoutineService) Delete(userID uint, routineID uint) error {
	if err := service.routines.SoftDeleteForUser(routineID, userID); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: routine %d", ErrNotFound, routineID)
		}
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}

// RecordLogs stores today's outcome per element. An element already logged today is overwritten,
// so repeated submissions never produce a second log for the same day.
func (service *RoutineService) RecordLogs(userID uint, routineID uint, entries []RoutineLogEntry, now time.Time) error {
	validation := &ValidationError{}
	for index, entry := range entries {
		if entry.DurationMinutes < 0 {
			validation.Add("duration_minutes must not be negative", "body", "logs", fmt.Sprint(index), "duration_minutes")
		}
	}
	if err := validation.OrNil(); err != nil {
		return err
	}

	routine, err := service.load(userID, routineID)
	if err != nil {
		return err
	}

	elements, err := service.routines.Elements(userID, []uint{routine.ID})
	if err != nil {
		return fmt.Errorf("load routine elements: %w", err)
	}
	known := make(map[uint]struct{}, len(elements))
	for _, element := range elements {
		known[element.ID] = struct{}{}
	}
	for _, entry := range entries {
		if _, ok := known[entry.ElementID]; !ok {
			return fmt.Errorf("%w: routine element %d", ErrNotFound, entry.ElementID)
		}
	}

	start, end := DayRange(now, service.location)
	todays, err := service.routines.LogsForDay(userID, []uint{routine.ID}, start, end)
	if err != nil {
		return fmt.Errorf("load routine logs: %w", err)
	}
	logged := schedule.GroupFirst(todays, func(entry models.RoutineLog) uint { return entry.RoutineElementID })

	completedAt := now.UTC()
	for _, entry := range entries {
		record, exists := logged[entry.ElementID]
		if !exists {
			record = models.RoutineLog{UserID: userID, RoutineID: routine.ID, RoutineElementID: entry.ElementID}
		}
		record.CompletedAt = completedAt
		record.DurationSeconds = entry.DurationMinutes * 60
		record.IsSkipped = entry.IsSkipped

		if exists {
			err = service.routines.SaveLog(&record)
		} else {
			err = service.routines.CreateLog(&record)
		}
		if err != nil {
			return fmt.Errorf("write routine log: %w", err)
		}
		logged[entry.ElementID] = record
	}
	return nil
}

func (service *RoutineService) single(userID uint, routine models.Routine, day time.Time) (RoutineView, error) {
	views, err := service.withLogs(userID, []models.Routine{routine}, day)
	if err != nil {
		return RoutineView{}, err
	}
	return views[0], nil
}

func (service *RoutineService) withLogs(userID uint, routines []models.Routine, day time.Time) ([]RoutineView, error) {
	routineIDs := make([]uint, 0, len(routines))
	for _, routine := range routines {
		routineIDs = append(routineIDs, routine.ID)
	}

	elements, err := service.routines.Elements(userID, routineIDs)
	if err != nil {
		return nil, fmt.Errorf("load routine elements: %w", err)
	}
	start, end := DayRange(day, service.location)
	logs, err := service.routines.LogsForDay(userID, routineIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("load routine logs: %w", err)
	}

	joined := schedule.AttachFirst(elements, logs,
		func(element models.RoutineElement) elementKey {
			return elementKey{RoutineID: element.RoutineID, ElementID: element.ID}
		},
		func(entry models.RoutineLog) elementKey {
			return elementKey{RoutineID: entry.RoutineID, ElementID: entry.RoutineElementID}
		},
	)
	byRoutine := schedule.GroupAll(joined, func(pair schedule.WithLog[models.RoutineElement, models.RoutineLog]) uint {
		return pair.Item.RoutineID
	})

	views := make([]RoutineView, 0, len(routines))
	for _, routine := range routines {
		views = append(views, service.presenter.routine(routine, byRoutine[routine.ID]))
	}
	return views, nil
}

func (service *RoutineService) load(userID uint, routineID uint) (models.Routine, error) {
	routine, err := service.routines.FindByIDForUser(routineID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Routine{}, fmt.Errorf("%w: routine %d", ErrNotFound, routineID)
		}
		return models.Routine{}, fmt.Errorf("load routine: %w", err)
	}
	return routine, nil
}

func validateElementUpdates(validation *ValidationError, updates []schedule.ElementUpdate) {
	for index, update := range updates {
		position := fmt.Sprint(index)
		if update.ID == nil {
			if update.Title == nil {
				validation.Add("title is required for a new element", "body", "routine_elements", position, "title")
			}
			if update.DurationMinutes == nil {
				validation.Add("duration_minutes is required for a new element", "body", "routine_elements", position, "duration_minutes")
			}
		}
		if update.Title != nil {
			checkTitle(validation, *update.Title, "body", "routine_elements", position, "title")
		}
		if update.DurationMinutes != nil {
			checkRange(validation, *update.DurationMinutes, 0, MinutesPerDay, "body", "routine_elements", position, "duration_minutes")
		}
		if update.Order != nil && *update.Order < 1 {
			validation.Add("order must be at least 1", "body", "routine_elements", position, "order")
		}
	}
}
