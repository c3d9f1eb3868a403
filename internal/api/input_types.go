package api

import (
	"github.com/terraincognita07/daymate/internal/schedule"
	"github.com/terraincognita07/daymate/internal/services"
)

type signupInput struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
	Email           string `json:"email" form:"email"`
	Nickname        string `json:"nickname" form:"nickname"`
}

type credentialsInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type updateMeInput struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
}

type todoCreatePayload struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	TargetDate string `json:"target_date"`
	Order      int    `json:"order"`
}

type todoUpdatePayload struct {
	Title      string  `json:"title"`
	Content    *string `json:"content"`
	TargetDate string  `json:"target_date"`
	Order      *int    `json:"order"`
	Completed  *bool   `json:"completed"`
}

type todoOrderPayload struct {
	TodoList []struct {
		ID    uint `json:"id"`
		Order int  `json:"order"`
	} `json:"todo_list"`
}

type habitPayload struct {
	Title             string `json:"title"`
	StartTimeMinutes  int    `json:"start_time_minutes"`
	EndTimeMinutes    int    `json:"end_time_minutes"`
	RepeatTimeMinutes int    `json:"repeat_time_minutes"`
	RepeatDays        []int  `json:"repeat_days"`
	Activated         *bool  `json:"activated"`
}

type routineElementPayload struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
}

type routineCreatePayload struct {
	Title            string                  `json:"title"`
	StartTimeMinutes int                     `json:"start_time_minutes"`
	RepeatDays       []int                   `json:"repeat_days"`
	RoutineElements  []routineElementPayload `json:"routine_elements"`
}

type routineElementUpdatePayload struct {
	ID              *uint   `json:"id"`
	Title           *string `json:"title"`
	Order           *int    `json:"order"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// routineUpdatePayload distinguishes an omitted routine_elements (nil) from an empty list.
type routineUpdatePayload struct {
	Title            *string                        `json:"title"`
	StartTimeMinutes *int                           `json:"start_time_minutes"`
	RepeatDays       *[]int                         `json:"repeat_days"`
	RoutineElements  *[]routineElementUpdatePayload `json:"routine_elements"`
}

type routineLogPayload struct {
	Logs []struct {
		RoutineItemID   uint `json:"routine_item_id"`
		DurationMinutes int  `json:"duration_minutes"`
		IsSkipped       bool `json:"is_skipped"`
	} `json:"logs"`
}

func (payload signupInput) input() services.SignupInput {
	return services.SignupInput{
		Username:        payload.Username,
		Password:        payload.Password,
		PasswordConfirm: payload.PasswordConfirm,
		Email:           payload.Email,
		Nickname:        payload.Nickname,
	}
}

func (payload todoCreatePayload) input() services.TodoInput {
	return services.TodoInput{
		Title:      payload.Title,
		Content:    payload.Content,
		TargetDate: payload.TargetDate,
		Order:      payload.Order,
	}
}

func (payload todoUpdatePayload) input() services.TodoUpdateInput {
	return services.TodoUpdateInput{
		Title:      payload.Title,
		Content:    payload.Content,
		TargetDate: payload.TargetDate,
		Order:      payload.Order,
		Completed:  payload.Completed,
	}
}

func (payload todoOrderPayload) orders() []services.TodoOrder {
	orders := make([]services.TodoOrder, 0, len(payload.TodoList))
	for _, entry := range payload.TodoList {
		orders = append(orders, services.TodoOrder{ID: entry.ID, Order: entry.Order})
	}
	return orders
}

func (payload habitPayload) input() services.HabitInput {
	return services.HabitInput{
		Title:             payload.Title,
		StartTimeMinutes:  payload.StartTimeMinutes,
		EndTimeMinutes:    payload.EndTimeMinutes,
		RepeatTimeMinutes: payload.RepeatTimeMinutes,
		RepeatDays:        payload.RepeatDays,
		Activated:         payload.Activated,
	}
}

func (payload routineCreatePayload) input() services.RoutineInput {
	elements := make([]services.RoutineElementInput, 0, len(payload.RoutineElements))
	for _, element := range payload.RoutineElements {
		elements = append(elements, services.RoutineElementInput{
			Title:           element.Title,
			DurationMinutes: element.DurationMinutes,
		})
	}
	return services.RoutineInput{
		Title:            payload.Title,
		StartTimeMinutes: payload.StartTimeMinutes,
		RepeatDays:       payload.RepeatDays,
		Elements:         elements,
	}
}

func (payload routineUpdatePayload) patch() services.RoutinePatch {
	patch := services.RoutinePatch{
		Title:            payload.Title,
		StartTimeMinutes: payload.StartTimeMinutes,
		RepeatDays:       payload.RepeatDays,
	}
	if payload.RoutineElements != nil {
		updates := make([]schedule.ElementUpdate, 0, len(*payload.RoutineElements))
		for _, element := range *payload.RoutineElements {
			updates = append(updates, schedule.ElementUpdate{
				ID:              element.ID,
				Title:           element.Title,
				Order:           element.Order,
				DurationMinutes: element.DurationMinutes,
			})
		}
		patch.Elements = &updates
	}
	return patch
}

func (payload routineLogPayload) entries() []services.RoutineLogEntry {
	entries := make([]services.RoutineLogEntry, 0, len(payload.Logs))
	for _, entry := range payload.Logs {
		entries = append(entries, services.RoutineLogEntry{
			ElementID:       entry.RoutineItemID,
			DurationMinutes: entry.DurationMinutes,
			IsSkipped:       entry.IsSkipped,
		})
	}
	return entries
}
