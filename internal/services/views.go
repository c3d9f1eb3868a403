package services

import (
	"time"

	"github.com/terraincognita07/daymate/internal/models"
	"github.com/terraincognita07/daymate/internal/schedule"
	"gorm.io/gorm"
)

type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

type TodoView struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	TargetDate  string     `json:"target_date"`
	Order       int        `json:"order"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type HabitView struct {
	ID                uint                `json:"id"`
	Title             string              `json:"title"`
	StartTimeMinutes  int                 `json:"start_time_minutes"`
	EndTimeMinutes    int                 `json:"end_time_minutes"`
	RepeatTimeMinutes int                 `json:"repeat_time_minutes"`
	RepeatDays        schedule.WeekdaySet `json:"repeat_days"`
	Activated         bool                `json:"activated"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	DeletedAt         *time.Time          `json:"deleted_at"`
}

type HabitLogView struct {
	ID          uint      `json:"id"`
	HabitID     uint      `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type HabitWithLogsView struct {
	HabitView
	NearWeekday int            `json:"near_weekday"`
	LogList     []HabitLogView `json:"log_list"`
}

type RoutineElementView struct {
	ID                       uint       `json:"id"`
	RoutineID                uint       `json:"routine_id"`
	Title                    string     `json:"title"`
	Order                    int        `json:"order"`
	DurationMinutes          int        `json:"duration_minutes"`
	CompletedAt              *time.Time `json:"completed_at"`
	CompletedDurationSeconds *int       `json:"completed_duration_seconds"`
	IsSkipped                bool       `json:"is_skipped"`
}

type RoutineView struct {
	ID               uint                 `json:"id"`
	Title            string               `json:"title"`
	StartTimeMinutes int                  `json:"start_time_minutes"`
	RepeatDays       schedule.WeekdaySet  `json:"repeat_days"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	DeletedAt        *time.Time           `json:"deleted_at"`
	RoutineElements  []RoutineElementView `json:"routine_elements"`
}

type DailyView struct {
	TodoList    []TodoView          `json:"todo_list"`
	RoutineList []RoutineView       `json:"routine_list"`
	HabitList   []HabitWithLogsView `json:"habit_list"`
}

// presenter renders stored rows in the configured location.
type presenter struct {
	location *time.Location
}

func (p presenter) at(value time.Time) time.Time {
	return value.In(p.location)
}

func (p presenter) atPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	localized := value.In(p.location)
	return &localized
}

func (p presenter) deletedAt(value gorm.DeletedAt) *time.Time {
	if !value.Valid {
		return nil
	}
	return p.atPtr(&value.Time)
}

func (p presenter) user(user models.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: p.at(user.CreatedAt),
	}
}

func (p presenter) todo(todo models.Todo) TodoView {
	return TodoView{
		ID:          todo.ID,
		Title:       todo.Title,
		Content:     todo.Content,
		TargetDate:  FormatDay(todo.TargetDate, p.location),
		Order:       todo.Order,
		Completed:   todo.Completed(),
		CompletedAt: p.atPtr(todo.CompletedAt),
		CreatedAt:   p.at(todo.CreatedAt),
		UpdatedAt:   p.at(todo.UpdatedAt),
	}
}

func (p presenter) todos(todos []models.Todo) []TodoView {
	views := make([]TodoView, 0, len(todos))
	for _, todo := range todos {
		views = append(views, p.todo(todo))
	}
	return views
}

func (p presenter) habit(habit models.Habit) HabitView {
	return HabitView{
		ID:                habit.ID,
		Title:             habit.Title,
		StartTimeMinutes:  habit.StartTimeMinutes,
		EndTimeMinutes:    habit.EndTimeMinutes,
		RepeatTimeMinutes: habit.RepeatTimeMinutes,
		RepeatDays:        habit.RepeatDays,
		Activated:         habit.Activated,
		CreatedAt:         p.at(habit.CreatedAt),
		UpdatedAt:         p.at(habit.UpdatedAt),
		DeletedAt:         p.deletedAt(habit.DeletedAt),
	}
}

func (p presenter) habitWithLogs(joined schedule.WithLogs[models.Habit, models.HabitLog], viewDay schedule.Weekday) HabitWithLogsView {
	logs := make([]HabitLogView, 0, len(joined.Logs))
	for _, entry := range joined.Logs {
		logs = append(logs, HabitLogView{
			ID:          entry.ID,
			HabitID:     entry.HabitID,
			CompletedAt: p.at(entry.CompletedAt),
		})
	}
	return HabitWithLogsView{
		HabitView:   p.habit(joined.Item),
		NearWeekday: int(schedule.NearestWeekday(joined.Item.RepeatDays, viewDay)),
		LogList:     logs,
	}
}

func (p presenter) routineElement(joined schedule.WithLog[models.RoutineElement, models.RoutineLog]) RoutineElementView {
	element := joined.Item
	view := RoutineElementView{
		ID:              element.ID,
		RoutineID:       element.RoutineID,
		Title:           element.Title,
		Order:           element.Order,
		DurationMinutes: element.DurationMinutes,
	}
	if joined.Log != nil {
		completedAt := p.at(joined.Log.CompletedAt)
		duration := joined.Log.DurationSeconds
		view.CompletedAt = &completedAt
		view.CompletedDurationSeconds = &duration
		view.IsSkipped = joined.Log.IsSkipped
	}
	return view
}

func (p presenter) routine(routine models.Routine, elements []schedule.WithLog[models.RoutineElement, models.RoutineLog]) RoutineView {
	views := make([]RoutineElementView, 0, len(elements))
	for _, element := range elements {
		views = append(views, p.routineElement(element))
	}
	return RoutineView{
		ID:               routine.ID,
		Title:            routine.Title,
		StartTimeMinutes: routine.StartTimeMinutes,
		RepeatDays:       routine.RepeatDays,
		CreatedAt:        p.at(routine.CreatedAt),
		UpdatedAt:        p.at(routine.UpdatedAt),
		DeletedAt:        p.deletedAt(routine.DeletedAt),
		RoutineElements:  views,
	}
}
