package projectmgmt

import (
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emapp/emapp/pkg/apperr"
)

// Record is a stored department or project.
type Record struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	// Data holds the schema properties of the record.
	Data map[string]any

	ID string
}

// Field returns the string value of a schema property.
func (r Record) Field(name string) string {
	s, _ := r.Data[name].(string)
	return s
}

// AsMap returns the record as a flat map including id and timestamps.
func (r Record) AsMap() map[string]any {
	out := maps.Clone(r.Data)
	if out == nil {
		out = map[string]any{}
	}
	out["id"] = r.ID
	out["created_at"] = r.CreatedAt.Format(time.RFC3339)
	out["updated_at"] = r.UpdatedAt.Format(time.RFC3339)
	return out
}

// Store persists departments and projects.
type Store interface {
	CreateDepartment(data map[string]any) (Record, error)
	// FindDepartment returns the department by record id or department id.
	FindDepartment(key string) (Record, error)
	CreateProject(data map[string]any) (Record, error)
	// FindProject returns the project by record id or project id.
	FindProject(key string) (Record, error)
	// Projects returns the projects of the department with the given
	// record id in creation order.
	Projects(departmentID string) []Record
}

// table is one keyed collection of records.
type table struct {
	records  map[string]Record
	order    []string
	keyField string
	notFound func() error
	conflict func() error
}

func newTable(keyField string, notFound, conflict func() error) *table {
	return &table{
		records:  make(map[string]Record),
		keyField: keyField,
		notFound: notFound,
		conflict: conflict,
	}
}

func (t *table) find(key string) (Record, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Record{}, t.notFound()
	}
	if r, ok := t.records[key]; ok {
		return r, nil
	}
	for _, id := range t.order {
		if r := t.records[id]; strings.EqualFold(r.Field(t.keyField), key) {
			return r, nil
		}
	}
	return Record{}, t.notFound()
}

func (t *table) insert(data map[string]any, now time.Time) (Record, error) {
	if _, err := t.find(stringField(data, t.keyField)); err == nil {
		return Record{}, t.conflict()
	}
	r := Record{
		ID:        uuid.NewString(),
		Data:      maps.Clone(data),
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.records[r.ID] = r
	t.order = append(t.order, r.ID)
	return r, nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu          sync.RWMutex
	departments *table
	projects    *table
	now         func() time.Time
}

// NewMemoryStore creates an empty project store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		departments: newTable("department_id",
			func() error {
				return apperr.NotFound("department", "Department not found.")
			},
			func() error {
				return apperr.Validation("department_id", "Department with department id already exists")
			},
		),
		projects: newTable("project_id",
			func() error {
				return apperr.NotFound("project_id_or_id", "Project not found.")
			},
			func() error {
				return apperr.Validation("project_id", "Project with project id already exists")
			},
		),
		now: time.Now,
	}
}

// CreateDepartment stores a new department. Department ids are unique.
func (s *MemoryStore) CreateDepartment(data map[string]any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.departments.insert(data, s.now().UTC())
}

// FindDepartment looks the key up as a record id, then as a department id.
func (s *MemoryStore) FindDepartment(key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments.find(key)
}

// CreateProject stores a new project. Project ids are unique and a
// missing project id is generated.
func (s *MemoryStore) CreateProject(data map[string]any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data = maps.Clone(data)
	if stringField(data, "project_id") == "" {
		data["project_id"] = uuid.NewString()
	}
	return s.projects.insert(data, s.now().UTC())
}

// FindProject looks the key up as a record id, then as a project id.
func (s *MemoryStore) FindProject(key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.find(key)
}

// Projects returns the projects of a department.
func (s *MemoryStore) Projects(departmentID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, id := range s.projects.order {
		if p := s.projects.records[id]; p.Field("department") == departmentID {
			out = append(out, p)
		}
	}
	return out
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return strings.TrimSpace(s)
}
