package board

import (
	"math"
	"sort"
	"time"

	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/taskmeta"
)

// Порядок колонок борда
var LuxStatusOrder = []entity.LuxStatus{
	entity.LuxBacklog,
	entity.LuxPlanning,
	entity.LuxInProgress,
	entity.LuxReview,
	entity.LuxCompleted,
}

type CategoryStat struct {
	Category       string  `json:"category"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Effort         float64 `json:"effort"`
	CompletionRate int     `json:"completionRate"`
}

type TeamLoadStat struct {
	AssigneeID     string  `json:"assigneeId"`
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	Effort         float64 `json:"effort"`
	CompletionRate int     `json:"completionRate"`
}

// Insights - все роллапы дашборда, пересчитываются с нуля на каждый запрос
type Insights struct {
	Board              map[entity.LuxStatus][]BoardTask `json:"board"`
	TotalTasks         int                              `json:"totalTasks"`
	CompletedCount     int                              `json:"completedCount"`
	ProgressPercent    int                              `json:"progressPercent"`
	MomentumScore      int                              `json:"momentumScore"`
	RunwayConfidence   int                              `json:"runwayConfidence"`
	CategoryBreakdown  []CategoryStat                   `json:"categoryBreakdown"`
	TeamLoad           []TeamLoadStat                   `json:"teamLoad"`
	DueThisWeek        []BoardTask                      `json:"dueThisWeek"`
	Overdue            []BoardTask                      `json:"overdue"`
	CriticalOpen       []BoardTask                      `json:"criticalOpen"`
	Focus              []BoardTask                      `json:"focus"`
	UpcomingMilestones []BoardTask                      `json:"upcomingMilestones"`
}

// GroupByStatus - раскладывает задачи по пяти фиксированным колонкам
func GroupByStatus(tasks []BoardTask) map[entity.LuxStatus][]BoardTask {
	buckets := map[entity.LuxStatus][]BoardTask{}
	for _, status := range LuxStatusOrder {
		buckets[status] = []BoardTask{}
	}
	for _, task := range tasks {
		buckets[task.Status] = append(buckets[task.Status], task)
	}
	return buckets
}

// BuildInsights - один проход по коллекции задач с единым снапшотом now,
// чтобы все производные наборы считались от одной точки отсчета
func BuildInsights(tasks []BoardTask, now time.Time) Insights {
	buckets := GroupByStatus(tasks)

	totalTasks := len(tasks)
	completedCount := len(buckets[entity.LuxCompleted])

	progressPercent := 0
	if totalTasks > 0 {
		progressPercent = roundRatio(float64(completedCount), float64(totalTasks))
	}

	totalEffort := sumEffort(tasks)
	completedEffort := sumEffort(buckets[entity.LuxCompleted])
	planningEffort := sumEffort(buckets[entity.LuxPlanning])
	inProgressEffort := sumEffort(buckets[entity.LuxInProgress])
	reviewEffort := sumEffort(buckets[entity.LuxReview])

	// работа в review ближе к готовности, чем просто в работе - вес 1.25
	momentumScore := 0
	if totalEffort > 0 {
		momentumScore = min100(roundRatio(inProgressEffort+reviewEffort*1.25, totalEffort))
	}

	// веса приближают вероятность довести стадию до конца
	runwayConfidence := 0
	if totalEffort > 0 {
		runwayConfidence = min100(roundRatio(completedEffort+planningEffort*0.45+inProgressEffort*0.7, totalEffort))
	}

	var dueThisWeek, overdue, criticalOpen, focusPool, milestones []BoardTask
	for _, task := range tasks {
		if task.Status == entity.LuxCompleted {
			continue
		}

		delta := taskmeta.CalendarDays(now, parseDate(task.DueDate, now))

		if delta >= 0 && delta <= 7 {
			dueThisWeek = append(dueThisWeek, task)
		}
		if delta < 0 {
			overdue = append(overdue, task)
		}
		if task.Priority == entity.PriorityCritical {
			criticalOpen = append(criticalOpen, task)
		}
		if task.Priority == entity.PriorityCritical || (delta >= 0 && delta <= 10) {
			focusPool = append(focusPool, task)
		}
		if delta >= 0 {
			milestones = append(milestones, task)
		}
	}

	sortByDueDate(focusPool)
	sortByDueDate(milestones)

	return Insights{
		Board:              buckets,
		TotalTasks:         totalTasks,
		CompletedCount:     completedCount,
		ProgressPercent:    progressPercent,
		MomentumScore:      momentumScore,
		RunwayConfidence:   runwayConfidence,
		CategoryBreakdown:  CategoryBreakdown(tasks),
		TeamLoad:           TeamLoad(tasks),
		DueThisWeek:        dueThisWeek,
		Overdue:            overdue,
		CriticalOpen:       criticalOpen,
		Focus:              capTasks(focusPool, 4),
		UpcomingMilestones: capTasks(milestones, 4),
	}
}

// CategoryBreakdown - счетчики и трудозатраты по категориям в порядке
// первого появления
func CategoryBreakdown(tasks []BoardTask) []CategoryStat {
	index := map[string]int{}
	var stats []CategoryStat

	for _, task := range tasks {
		i, ok := index[task.Category]
		if !ok {
			i = len(stats)
			index[task.Category] = i
			stats = append(stats, CategoryStat{Category: task.Category})
		}
		stats[i].Total++
		stats[i].Effort += task.Effort
		if task.Status == entity.LuxCompleted {
			stats[i].Completed++
		}
	}

	for i := range stats {
		if stats[i].Total > 0 {
			stats[i].CompletionRate = roundRatio(float64(stats[i].Completed), float64(stats[i].Total))
		}
	}

	return stats
}

// TeamLoad - нагрузка по исполнителям; ключ - id исполнителя с фолбэком на имя
func TeamLoad(tasks []BoardTask) []TeamLoadStat {
	index := map[string]int{}
	var stats []TeamLoadStat

	for _, task := range tasks {
		key := task.Assignee
		if task.AssigneeID != nil && *task.AssigneeID != "" {
			key = *task.AssigneeID
		}

		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, TeamLoadStat{AssigneeID: key})
		}
		stats[i].Total++
		stats[i].Effort += task.Effort
		if task.Status == entity.LuxCompleted {
			stats[i].Completed++
		} else {
			stats[i].Active++
		}
	}

	for i := range stats {
		if stats[i].Total > 0 {
			stats[i].CompletionRate = roundRatio(float64(stats[i].Completed), float64(stats[i].Total))
		}
	}

	return stats
}

func sumEffort(tasks []BoardTask) float64 {
	total := 0.0
	for _, task := range tasks {
		total += task.Effort
	}
	return total
}

func roundRatio(part, total float64) int {
	return int(math.Round(part / total * 100))
}

func min100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

func sortByDueDate(tasks []BoardTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate < tasks[j].DueDate
	})
}

func capTasks(tasks []BoardTask, limit int) []BoardTask {
	if len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}
