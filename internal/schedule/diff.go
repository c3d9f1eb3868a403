package schedule

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownElement = errors.New("routine element not found")

// ExistingElement is the stored state the diff needs: identity and position.
type ExistingElement struct {
	ID    uint
	Order int
}

// ElementUpdate is one submitted element. A nil ID means "create"; nil fields keep the stored value.
type ElementUpdate struct {
	ID              *uint
	Title           *string
	Order           *int
	DurationMinutes *int
}

// ElementPlan lists what has to change for the submitted list to become the routine's elements.
type ElementPlan struct {
	Updates []ElementUpdate
	Creates []ElementUpdate
	Deletes []uint
}

// PlanElementDiff matches updates to existing elements by id. Every existing
// element the updates do not mention is scheduled for deletion, so an empty
// update list removes all elements. Creates without an explicit order are
// placed after the highest order that survives the update.
func PlanElementDiff(existing []ExistingElement, updates []ElementUpdate) (ElementPlan, error) {
	pending := make(map[uint]ExistingElement, len(existing))
	for _, element := range existing {
		pending[element.ID] = element
	}

	plan := ElementPlan{
		Updates: make([]ElementUpdate, 0, len(updates)),
		Creates: make([]ElementUpdate, 0),
		Deletes: make([]uint, 0),
	}

	maxOrder := 0
	for _, update := range updates {
		if update.ID == nil {
			if update.Order != nil && *update.Order > maxOrder {
				maxOrder = *update.Order
			}
			plan.Creates = append(plan.Creates, update)
			continue
		}

		element, ok := pending[*update.ID]
		if !ok {
			return ElementPlan{}, fmt.Errorf("%w: %d", ErrUnknownElement, *update.ID)
		}
		delete(pending, element.ID)

		order := element.Order
		if update.Order != nil {
			order = *update.Order
		}
		if order > maxOrder {
			maxOrder = order
		}
		plan.Updates = append(plan.Updates, update)
	}

	for index := range plan.Creates {
		if plan.Creates[index].Order != nil {
			continue
		}
		maxOrder++
		order := maxOrder
		plan.Creates[index].Order = &order
	}

	for id := range pending {
		plan.Deletes = append(plan.Deletes, id)
	}
	sort.Slice(plan.Deletes, func(i, j int) bool { return plan.Deletes[i] < plan.Deletes[j] })

	return plan, nil
}
