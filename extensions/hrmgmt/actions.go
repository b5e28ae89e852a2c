package hrmgmt

import (
	"fmt"
	"log/slog"
	"maps"
	"mime/multipart"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/emapp/emapp/extensions/core"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/utility"
)

// Search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	SuggestionLimit    = 30
)

// AvatarField is the multipart field carrying an avatar upload.
const AvatarField = "upload_avatar"

// DefaultSearchFields are matched by search_employee when no
// search_fields are given.
var DefaultSearchFields = []string{
	"first_name",
	"middle_name",
	"last_name",
	"work_email",
	"employee_id",
	"position",
	"work_country_code",
}

// alwaysShown are returned by show_employee regardless of role.
var alwaysShown = []string{"id", "created_at", "updated_at", "avatar"}

// title upper-cases the first letter of every word. A Caser keeps state,
// so one is created per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// createEmployee stores a new employee.
// Only superusers may create another admin.
func (e *Extension) createEmployee(c *action.Context, data map[string]any) (any, error) {
	e.logger.InfoContext(c, "checking authorization", slog.String("action", c.ActionName))
	if !canCreate(c) {
		return nil, apperr.NotAuthorized("user", "You are not authorised to create employee")
	}

	data = maps.Clone(data)
	show := popShowFlag(data)
	normalizeSkills(data)

	if role, _ := data["role"].(string); role == RoleAdmin && !c.IsSuperuser {
		return nil, apperr.NotAuthorized("role", "Only super user can add an employee with admin role")
	}

	if _, err := e.schemas.Validate(SchemaName, data); err != nil {
		return nil, err
	}
	if err := e.validators.Run(ValidateExistingUser, "employee_id", data["employee_id"]); err != nil {
		return nil, err
	}
	if err := e.resolveReportingManager(data, ""); err != nil {
		return nil, err
	}

	avatar, err := e.avatarFromUpload(c)
	if err != nil {
		return nil, err
	}

	emp, err := e.store.Create(data, avatarOrEmpty(avatar))
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(c, "employee created",
		slog.String("employee_id", emp.EmployeeID()),
		slog.String("id", emp.ID),
	)

	if show {
		return e.showEmployee(c, map[string]any{"id": emp.ID})
	}
	return map[string]any{
		"message": fmt.Sprintf("Employee with id: %s has been created successfully", emp.EmployeeID()),
	}, nil
}

// updateEmployee changes the fields of an employee. Every changed field
// must list the acting role in its update roles.
func (e *Extension) updateEmployee(c *action.Context, data map[string]any) (any, error) {
	if err := requireAuthenticated(c); err != nil {
		return nil, err
	}

	data = maps.Clone(data)
	show := popShowFlag(data)
	id := stringValue(data["id"])
	delete(data, "id")
	normalizeSkills(data)

	if id == "" {
		return nil, apperr.Validation("id", "id parameter is required.")
	}
	e.logger.InfoContext(c, "updating employee", slog.String("id", id))

	emp, err := e.store.Find(id)
	if err != nil {
		return nil, err
	}
	if !canUpdate(c, emp) {
		return nil, apperr.NotAuthorized("user", "Not authorized to perform update action.")
	}

	merged := maps.Clone(emp.Data)
	maps.Copy(merged, data)
	if _, err := e.schemas.Validate(SchemaName, merged); err != nil {
		return nil, err
	}

	def, err := e.schemas.Get(SchemaName)
	if err != nil {
		return nil, err
	}
	if err := def.CheckUpdate(c.Role, data); err != nil {
		return nil, err
	}
	if err := e.resolveReportingManager(data, emp.ID); err != nil {
		return nil, err
	}

	avatar, err := e.avatarFromUpload(c)
	if err != nil {
		return nil, err
	}

	emp, err = e.store.Update(emp.ID, data, avatar)
	if err != nil {
		return nil, err
	}

	if show {
		return e.showEmployee(c, map[string]any{"id": emp.ID})
	}
	return map[string]any{
		"message": fmt.Sprintf("Employee with id: %s has been updated successfully", emp.EmployeeID()),
	}, nil
}

// showEmployee returns the fields of an employee the acting role may see.
func (e *Extension) showEmployee(c *action.Context, data map[string]any) (any, error) {
	if !canShow(c) {
		return nil, apperr.NotAuthorized("user", "Not authorized to see profile.")
	}
	id := stringValue(data["id"])
	if id == "" {
		return nil, apperr.Validation("id", "id parameter is required.")
	}

	emp, err := e.store.Find(id)
	if err != nil {
		return nil, err
	}
	return e.visibleFields(c, emp)
}

func (e *Extension) visibleFields(c *action.Context, emp Employee) (map[string]any, error) {
	def, err := e.schemas.Get(SchemaName)
	if err != nil {
		return nil, err
	}
	all := emp.AsMap()
	out := def.FilterShow(viewRole(c, emp), all)
	for _, k := range alwaysShown {
		out[k] = all[k]
	}
	return out, nil
}

// searchEmployee matches q case-insensitively against search_fields and
// returns one page of results with the total match count.
func (e *Extension) searchEmployee(c *action.Context, data map[string]any) (any, error) {
	limit, offset := DefaultSearchLimit, 0
	if v, ok := data["offset"]; ok {
		n, ok := utility.ToInt(v)
		if !ok || n < 0 {
			return nil, apperr.Validation("offset", "Offset should be integer")
		}
		offset = n
	}
	if v, ok := data["limit"]; ok {
		n, ok := utility.ToInt(v)
		if !ok || n < 0 || n > MaxSearchLimit {
			return nil, apperr.Validation("limit", "Should be integer and max value allowed is 100")
		}
		limit = n
	}

	if err := requireAuthenticated(c); err != nil {
		return nil, err
	}
	if v, ok := data["query_dict"]; ok && !isEmptyValue(v) {
		return nil, apperr.NotSupported("query_dict", "Raw search queries are not supported")
	}

	fields, err := searchFields(data["search_fields"])
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(stringValue(data["q"])))

	var matches []Employee
	for _, emp := range e.store.List() {
		if q == "" || matchesAny(emp, fields, q) {
			matches = append(matches, emp)
		}
	}

	results := make([]any, 0, limit)
	for i := offset; i < len(matches) && len(results) < limit; i++ {
		row, err := e.visibleFields(c, matches[i])
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return map[string]any{
		"results":   results,
		"res_count": len(matches),
	}, nil
}

// deleteEmployee removes an employee. Only admin and hr may delete.
func (e *Extension) deleteEmployee(c *action.Context, data map[string]any) (any, error) {
	if !canDelete(c) {
		return nil, apperr.NotAuthorized("user", "User not authorized to delete employee")
	}
	id := stringValue(data["id"])
	e.logger.InfoContext(c, "deleting employee", slog.String("id", id))
	if id == "" {
		return nil, apperr.Validation("id", "id parameter is required.")
	}

	emp, err := e.store.Find(id)
	if err != nil {
		return nil, err
	}
	if err := e.store.Delete(emp.ID); err != nil {
		return nil, err
	}
	return map[string]any{
		"message": fmt.Sprintf("Employee with id: %s has been deleted successfully", id),
	}, nil
}

// suggestEmployee returns distinct values of a string field that start
// with the search term, for autocomplete widgets. The field may carry a
// form prefix such as "id-position".
func (e *Extension) suggestEmployee(c *action.Context, data map[string]any) (any, error) {
	if err := requireAuthenticated(c); err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(stringValue(data["search[term]"])))
	field := stringValue(data["search_field"])
	if term == "" || field == "" {
		return []any{}, nil
	}
	field = field[strings.LastIndex(field, "-")+1:]

	def, err := e.schemas.Get(SchemaName)
	if err != nil {
		return nil, err
	}
	if p, ok := def.Property(field); !ok || (p.Type() != "string" && p.Type() != "array") {
		return nil, apperr.Validation(field, "Looks like field is not available in index")
	}

	seen := map[string]bool{}
	out := []any{}
	for _, emp := range e.store.List() {
		for _, v := range fieldValues(emp.Data[field]) {
			key := strings.ToLower(strings.TrimSpace(v))
			if seen[key] || !strings.HasPrefix(key, term) {
				continue
			}
			seen[key] = true
			out = append(out, map[string]any{"id": key, "text": title(strings.TrimSpace(v))})
			if len(out) == SuggestionLimit {
				return out, nil
			}
		}
	}
	return out, nil
}

// resolveReportingManager replaces a reporting manager given by employee
// id or email with the manager's record id.
func (e *Extension) resolveReportingManager(data map[string]any, selfID string) error {
	ref := stringValue(data["reporting_manager"])
	if ref == "" {
		return nil
	}
	mgr, err := e.store.Find(ref)
	if err != nil {
		return apperr.Validation("reporting_manager", "Given reporting manager not available")
	}
	if selfID != "" && mgr.ID == selfID {
		return apperr.Validation("reporting_manager", "You cannot assign yourself as reporting manager")
	}
	data["reporting_manager"] = mgr.ID
	return nil
}

// avatarFromUpload validates an uploaded avatar and returns its stored
// path, or nil when no avatar was uploaded.
func (e *Extension) avatarFromUpload(c *action.Context) (*string, error) {
	files := c.Files[AvatarField]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	if err := e.validators.Run(ValidateAvatarFile, AvatarField, fh); err != nil {
		return nil, err
	}
	p := avatarPath(fh)
	return &p, nil
}

func avatarPath(fh *multipart.FileHeader) string {
	return path.Join("avatar", path.Base(fh.Filename))
}

func avatarOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// popShowFlag removes show_employee from data. It defaults to true.
func popShowFlag(data map[string]any) bool {
	v, ok := data["show_employee"]
	delete(data, "show_employee")
	if !ok {
		return true
	}
	return core.ToBool(v)
}

// normalizeSkills turns a comma separated skills string, as sent by
// multipart forms, into a title-cased list.
func normalizeSkills(data map[string]any) {
	s, ok := data["skills"].(string)
	if !ok || s == "" {
		return
	}
	var skills []any
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, title(part))
		}
	}
	data["skills"] = skills
}

func searchFields(v any) ([]string, error) {
	switch f := v.(type) {
	case nil:
		return DefaultSearchFields, nil
	case string:
		if strings.TrimSpace(f) == "" {
			return DefaultSearchFields, nil
		}
		var out []string
		for _, part := range strings.Split(f, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) == 0 {
			return nil, apperr.Validation("search_fields", "Search fields should be list")
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(f))
		for _, item := range f {
			s, ok := item.(string)
			if !ok {
				return nil, apperr.Validation("search_fields", "Search fields should be list")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, apperr.Validation("search_fields", "Search fields should be list")
}

func matchesAny(emp Employee, fields []string, q string) bool {
	for _, f := range fields {
		for _, v := range fieldValues(emp.Data[f]) {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	return false
}

func fieldValues(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	}
	return nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	}
	return false
}
