package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/domain/clock"
	domainClass "gymdesk/internal/domain/gymclass"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// ClassRow is one scheduled class with its trainer resolved.
type ClassRow struct {
	domainClass.GymClass
	TrainerName string // empty when unassigned
	Today       bool
	Past        bool
}

// GetClassBoardResult carries the classes page.
type GetClassBoardResult struct {
	Classes  []ClassRow
	Trainers []domainTrainer.Trainer // for the assignment drop-down
}

// GetClassBoardDeps holds dependencies for GetClassBoard.
type GetClassBoardDeps struct {
	ClassStore   ClassStore
	TrainerStore TrainerStore
	Clock        clock.Clock
}

// QueryGetClassBoard lists classes by date and time with trainer names.
// PRE: none
// POST: Classes whose trainer was removed show as unassigned
func QueryGetClassBoard(ctx context.Context, deps GetClassBoardDeps) (GetClassBoardResult, error) {
	trainers, err := deps.TrainerStore.List(ctx)
	if err != nil {
		return GetClassBoardResult{}, err
	}
	names := make(map[string]string, len(trainers))
	for _, t := range trainers {
		names[t.ID] = t.Name
	}

	classes, err := deps.ClassStore.List(ctx, gymclass.ListFilter{Chronological: true})
	if err != nil {
		return GetClassBoardResult{}, err
	}

	today := deps.Clock.LocalToday()
	res := GetClassBoardResult{Trainers: trainers}
	for _, c := range classes {
		res.Classes = append(res.Classes, ClassRow{
			GymClass:    c,
			TrainerName: names[c.TrainerID],
			Today:       c.Date.Equal(today),
			Past:        c.Date.Before(today),
		})
	}
	return res, nil
}
