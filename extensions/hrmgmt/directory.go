package hrmgmt

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emapp/emapp/pkg/apperr"
)

// Employee is a stored employee record.
type Employee struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	// Data holds the schema properties of the employee.
	Data map[string]any

	ID     string
	Avatar string
}

// EmployeeID returns the normalized employee id.
func (e Employee) EmployeeID() string {
	s, _ := e.Data["employee_id"].(string)
	return s
}

// WorkEmail returns the normalized work email.
func (e Employee) WorkEmail() string {
	s, _ := e.Data["work_email"].(string)
	return s
}

// Field returns the string value of a schema property.
func (e Employee) Field(name string) string {
	s, _ := e.Data[name].(string)
	return s
}

// AsMap returns the employee as a flat map including id, timestamps and
// avatar. The employee id is upper-cased for display.
func (e Employee) AsMap() map[string]any {
	out := maps.Clone(e.Data)
	if out == nil {
		out = map[string]any{}
	}
	out["employee_id"] = strings.ToUpper(e.EmployeeID())
	out["id"] = e.ID
	out["created_at"] = e.CreatedAt.Format(time.RFC3339)
	out["updated_at"] = e.UpdatedAt.Format(time.RFC3339)
	out["avatar"] = e.Avatar
	return out
}

// Store persists employees.
type Store interface {
	// Find returns the employee by id, employee id or work email.
	Find(key string) (Employee, error)
	Create(data map[string]any, avatar string) (Employee, error)
	Update(id string, data map[string]any, avatar *string) (Employee, error)
	Delete(id string) error
	Count() int
	List() []Employee
}

// MemoryStore is an in-process Store. Records are kept in insertion order.
type MemoryStore struct {
	mu        sync.RWMutex
	employees map[string]Employee
	order     []string
	now       func() time.Time
}

// NewMemoryStore creates an empty employee store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: make(map[string]Employee),
		now:       time.Now,
	}
}

// Find looks the key up as a record id, then as an employee id and then
// as a work email, all case-insensitive except the record id.
func (s *MemoryStore) Find(key string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(key)
}

func (s *MemoryStore) find(key string) (Employee, error) {
	key = strings.TrimSpace(key)
	if key != "" {
		if e, ok := s.employees[key]; ok {
			return e, nil
		}
		for _, match := range []func(Employee) string{Employee.EmployeeID, Employee.WorkEmail} {
			for _, id := range s.order {
				e := s.employees[id]
				if strings.EqualFold(match(e), key) {
					return e, nil
				}
			}
		}
	}
	return Employee{}, apperr.NotFound("employee_id_or_id", "Employee not found.")
}

// Create stores a new employee. Employee ids and work emails are unique.
func (s *MemoryStore) Create(data map[string]any, avatar string) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	e := Employee{
		ID:        uuid.NewString(),
		Data:      normalizeRecord(data),
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.checkUnique(e); err != nil {
		return Employee{}, err
	}
	s.employees[e.ID] = e
	s.order = append(s.order, e.ID)
	return e, nil
}

// Update merges data into the employee with the given record id.
// A non-nil avatar replaces the stored avatar.
func (s *MemoryStore) Update(id string, data map[string]any, avatar *string) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return Employee{}, apperr.NotFound("employee_id_or_id", "Employee not found.")
	}
	merged := maps.Clone(e.Data)
	maps.Copy(merged, data)
	e.Data = normalizeRecord(merged)
	if avatar != nil {
		e.Avatar = *avatar
	}
	e.UpdatedAt = s.now().UTC()

	if err := s.checkUnique(e); err != nil {
		return Employee{}, err
	}
	s.employees[id] = e
	return e, nil
}

// Delete removes the employee with the given record id.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return apperr.NotFound("employee_id_or_id", "Employee not found.")
	}
	delete(s.employees, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

// Count returns the number of stored employees.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}

// List returns every employee in insertion order.
func (s *MemoryStore) List() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.employees[id])
	}
	return out
}

func (s *MemoryStore) checkUnique(e Employee) error {
	for _, id := range s.order {
		if id == e.ID {
			continue
		}
		other := s.employees[id]
		if other.EmployeeID() == e.EmployeeID() {
			return apperr.Validation("employee_id", "User with employee id already exists")
		}
		if e.WorkEmail() != "" && other.WorkEmail() == e.WorkEmail() {
			return apperr.Validation("work_email", "User with work email already exists")
		}
	}
	return nil
}

// normalizeRecord lower-cases the employee id and work email.
func normalizeRecord(data map[string]any) map[string]any {
	out := maps.Clone(data)
	if out == nil {
		out = map[string]any{}
	}
	for _, k := range []string{"employee_id", "work_email"} {
		if s, ok := out[k].(string); ok {
			out[k] = strings.ToLower(strings.TrimSpace(s))
		}
	}
	return out
}
