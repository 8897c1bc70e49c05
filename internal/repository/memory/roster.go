package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
)

type templateRepository struct{ *Store }

func (s *Store) Templates() roster.TemplateRepository { return templateRepository{s} }

func (r templateRepository) nameTaken(name, excludeID string) bool {
	for _, t := range r.templates {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (r templateRepository) withNames(t roster.RosterTemplate) roster.RosterTemplate {
	allocations := make([]roster.TemplateAllocation, len(t.Allocations))
	for i, a := range t.Allocations {
		a.StaffName = r.staffName(a.StaffID)
		allocations[i] = a
	}
	t.Allocations = allocations
	return t
}

func (r templateRepository) Create(ctx context.Context, t roster.RosterTemplate) (roster.RosterTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(t.Name, "") {
		return roster.RosterTemplate{}, roster.ErrTemplateNameExists
	}
	t.Allocations = r.numbered(t.ID, t.Allocations)
	r.templates[t.ID] = t
	return r.withNames(t), nil
}

func (r templateRepository) numbered(templateID string, allocations []roster.TemplateAllocation) []roster.TemplateAllocation {
	result := make([]roster.TemplateAllocation, len(allocations))
	for i, a := range allocations {
		r.nextTplAllocID++
		a.ID = r.nextTplAllocID
		a.TemplateID = templateID
		result[i] = a
	}
	return result
}

func (r templateRepository) UpdateName(ctx context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return roster.ErrTemplateNotFound
	}
	if r.nameTaken(name, id) {
		return roster.ErrTemplateNameExists
	}
	t.Name = name
	r.templates[id] = t
	return nil
}

func (r templateRepository) ReplaceAllocations(ctx context.Context, templateID string, allocations []roster.TemplateAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[templateID]
	if !ok {
		return roster.ErrTemplateNotFound
	}
	t.Allocations = r.numbered(templateID, allocations)
	r.templates[templateID] = t
	return nil
}

func (r templateRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return roster.ErrTemplateNotFound
	}
	for _, ds := range r.schedules {
		if ds.TemplateID == id {
			return roster.ErrTemplateInUse
		}
	}
	delete(r.templates, id)
	return nil
}

func (r templateRepository) GetByID(ctx context.Context, id string) (roster.RosterTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	if !ok {
		return roster.RosterTemplate{}, roster.ErrTemplateNotFound
	}
	return r.withNames(t), nil
}

func (r templateRepository) List(ctx context.Context) ([]roster.RosterTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]roster.RosterTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		result = append(result, r.withNames(t))
	}
	slices.SortFunc(result, func(a, b roster.RosterTemplate) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r templateRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nameTaken(name, excludeID), nil
}

func (r templateRepository) MaxID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maxID(r.templates, "RST"), nil
}

type dayScheduleRepository struct{ *Store }

func (s *Store) DaySchedules() roster.DayScheduleRepository { return dayScheduleRepository{s} }

func (r dayScheduleRepository) withName(ds roster.DaySchedule) roster.DaySchedule {
	if t, ok := r.templates[ds.TemplateID]; ok {
		name := t.Name
		ds.TemplateName = &name
	}
	return ds
}

func (r dayScheduleRepository) Create(ctx context.Context, ds roster.DaySchedule) (roster.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attendance.DateKey(ds.ScheduleDate)
	if _, exists := r.schedules[key]; exists {
		return roster.DaySchedule{}, roster.ErrDateAlreadyScheduled
	}
	if _, ok := r.templates[ds.TemplateID]; !ok {
		return roster.DaySchedule{}, roster.ErrTemplateNotFound
	}
	r.nextScheduleID++
	ds.ID = r.nextScheduleID
	r.schedules[key] = ds
	return r.withName(ds), nil
}

func (r dayScheduleRepository) GetByDate(ctx context.Context, date time.Time) (roster.DaySchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.schedules[attendance.DateKey(date)]
	if !ok {
		return roster.DaySchedule{}, roster.ErrScheduleNotFound
	}
	return r.withName(ds), nil
}

func (r dayScheduleRepository) ListByRange(ctx context.Context, from, to time.Time) ([]roster.DaySchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []roster.DaySchedule
	for _, ds := range r.schedules {
		if inRange(ds.ScheduleDate, from, to) {
			result = append(result, r.withName(ds))
		}
	}
	slices.SortFunc(result, func(a, b roster.DaySchedule) int {
		return a.ScheduleDate.Compare(b.ScheduleDate)
	})
	return result, nil
}

func (r dayScheduleRepository) ExistsByTemplateID(ctx context.Context, templateID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ds := range r.schedules {
		if ds.TemplateID == templateID {
			return true, nil
		}
	}
	return false, nil
}

func (r dayScheduleRepository) update(date time.Time, fn func(*roster.DaySchedule)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attendance.DateKey(date)
	ds, ok := r.schedules[key]
	if !ok {
		return roster.ErrScheduleNotFound
	}
	fn(&ds)
	r.schedules[key] = ds
	return nil
}

func (r dayScheduleRepository) SetUnavailable(ctx context.Context, date time.Time, hasUnavailable bool) error {
	return r.update(date, func(ds *roster.DaySchedule) { ds.HasUnavailableStaff = hasUnavailable })
}

func (r dayScheduleRepository) Acknowledge(ctx context.Context, date time.Time) error {
	return r.update(date, func(ds *roster.DaySchedule) { ds.IsAcknowledged = true })
}

func (r dayScheduleRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.schedules, attendance.DateKey(date))
	return nil
}

type allocationRepository struct{ *Store }

func (s *Store) Allocations() roster.AllocationRepository { return allocationRepository{s} }

func (r allocationRepository) withName(a roster.Allocation) roster.Allocation {
	a.StaffName = r.staffName(a.StaffID)
	return a
}

// conflicts reports whether another allocation holds the same staff and date.
func (r allocationRepository) conflicts(a roster.Allocation) bool {
	for _, existing := range r.allocations {
		if existing.ID != a.ID && existing.StaffID == a.StaffID && existing.AssignedDate.Equal(a.AssignedDate) {
			return true
		}
	}
	return false
}

func (r allocationRepository) insert(a roster.Allocation) error {
	if _, exists := r.allocations[a.ID]; exists {
		return roster.ErrAllocationIDTaken
	}
	if r.conflicts(a) {
		return roster.ErrStaffAlreadyAllocated
	}
	a.StaffName = nil
	r.allocations[a.ID] = a
	return nil
}

func (r allocationRepository) Create(ctx context.Context, a roster.Allocation) (roster.Allocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insert(a); err != nil {
		return roster.Allocation{}, err
	}
	return r.withName(a), nil
}

func (r allocationRepository) CreateBatch(ctx context.Context, allocations []roster.Allocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range allocations {
		if err := r.insert(a); err != nil {
			return err
		}
	}
	return nil
}

func (r allocationRepository) GetByID(ctx context.Context, id string) (roster.Allocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.allocations[id]
	if !ok {
		return roster.Allocation{}, roster.ErrAllocationNotFound
	}
	return r.withName(a), nil
}

func (r allocationRepository) GetByIDAndStaff(ctx context.Context, id, staffID string) (roster.Allocation, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil || a.StaffID != staffID {
		return roster.Allocation{}, roster.ErrAllocationNotFound
	}
	return a, nil
}

func (r allocationRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (roster.Allocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.allocations {
		if a.StaffID == staffID && a.AssignedDate.Equal(date) {
			return r.withName(a), nil
		}
	}
	return roster.Allocation{}, roster.ErrAllocationNotFound
}

func (r allocationRepository) filter(keep func(roster.Allocation) bool) []roster.Allocation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []roster.Allocation
	for _, a := range r.allocations {
		if keep(a) {
			result = append(result, r.withName(a))
		}
	}
	slices.SortFunc(result, func(a, b roster.Allocation) int {
		if c := a.AssignedDate.Compare(b.AssignedDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

func (r allocationRepository) ListByDate(ctx context.Context, date time.Time) ([]roster.Allocation, error) {
	return r.filter(func(a roster.Allocation) bool { return a.AssignedDate.Equal(date) }), nil
}

func (r allocationRepository) ListByRange(ctx context.Context, from, to time.Time) ([]roster.Allocation, error) {
	return r.filter(func(a roster.Allocation) bool { return inRange(a.AssignedDate, from, to) }), nil
}

func (r allocationRepository) ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]roster.Allocation, error) {
	return r.filter(func(a roster.Allocation) bool {
		return a.StaffID == staffID && inRange(a.AssignedDate, from, to)
	}), nil
}

func (r allocationRepository) ListTeammates(ctx context.Context, date time.Time, taskName, excludeStaffID string) ([]roster.Allocation, error) {
	return r.filter(func(a roster.Allocation) bool {
		return a.AssignedDate.Equal(date) && a.TaskName == taskName && a.StaffID != excludeStaffID
	}), nil
}

func (r allocationRepository) Update(ctx context.Context, a roster.Allocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.allocations[a.ID]; !ok {
		return roster.ErrAllocationNotFound
	}
	if r.conflicts(a) {
		return roster.ErrStaffAlreadyAllocated
	}
	a.StaffName = nil
	r.allocations[a.ID] = a
	return nil
}

func (r allocationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.allocations[id]; !ok {
		return roster.ErrAllocationNotFound
	}
	delete(r.allocations, id)
	return nil
}

func (r allocationRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.allocations {
		if a.AssignedDate.Equal(date) {
			delete(r.allocations, id)
		}
	}
	return nil
}

func (r allocationRepository) MaxID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maxID(r.allocations, "ALC"), nil
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}
