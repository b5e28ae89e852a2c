package projectmgmt

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/emapp/emapp/extensions/core"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/validator"
)

// DescriptionHTML is the key of the rendered project description in
// show_project results.
const DescriptionHTML = "project_description_html"

func canManage(c *action.Context) bool {
	return c.IsSuperuser || c.HasRole("admin", "hr")
}

func (e *Extension) createDepartment(c *action.Context, data map[string]any) (any, error) {
	if !canManage(c) {
		return nil, apperr.NotAuthorized("user", "You are not authorised to create department")
	}
	if _, err := e.schemas.Validate(DepartmentSchema, data); err != nil {
		return nil, err
	}

	dept, err := e.store.CreateDepartment(data)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(c, "department created",
		slog.String("department_id", dept.Field("department_id")),
		slog.String("id", dept.ID),
	)
	return e.visible(c, DepartmentSchema, dept)
}

func (e *Extension) showDepartment(c *action.Context, data map[string]any) (any, error) {
	if !c.IsAuthenticated() {
		return nil, apperr.NotAuthorized("user", "You are not logged in to perform this action")
	}
	id, _ := data["id"].(string)
	if id == "" {
		return nil, apperr.Validation("id", "id parameter is required.")
	}

	dept, err := e.store.FindDepartment(id)
	if err != nil {
		return nil, err
	}
	out, err := e.visible(c, DepartmentSchema, dept)
	if err != nil {
		return nil, err
	}
	projects := e.store.Projects(dept.ID)
	ids := make([]any, len(projects))
	for i, p := range projects {
		ids[i] = p.Field("project_id")
	}
	out["projects"] = ids
	return out, nil
}

// createProject stores a project under an existing department. The
// department may be given by record id or department id.
func (e *Extension) createProject(c *action.Context, data map[string]any) (any, error) {
	if !canManage(c) {
		return nil, apperr.NotAuthorized("user", "You are not authorised to create project")
	}

	data = maps.Clone(data)
	show := true
	if v, ok := data["show_project"]; ok {
		show = core.ToBool(v)
		delete(data, "show_project")
	}

	if _, err := e.schemas.Validate(ProjectSchema, data); err != nil {
		return nil, err
	}
	if err := contractPeriod(data); err != nil {
		return nil, err
	}
	dept, err := e.store.FindDepartment(fmt.Sprint(data["department"]))
	if err != nil {
		return nil, apperr.Validation("department", "Given department not found")
	}
	data["department"] = dept.ID

	p, err := e.store.CreateProject(data)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(c, "project created",
		slog.String("project_id", p.Field("project_id")),
		slog.String("department", dept.Field("department_id")),
	)

	if show {
		return e.showProject(c, map[string]any{"id": p.ID})
	}
	return map[string]any{
		"message": fmt.Sprintf("Project with id: %s has been created successfully", p.Field("project_id")),
	}, nil
}

// showProject returns the fields of a project visible to the acting role
// with the description rendered from Markdown.
func (e *Extension) showProject(c *action.Context, data map[string]any) (any, error) {
	if !c.IsAuthenticated() {
		return nil, apperr.NotAuthorized("user", "You are not logged in to perform this action")
	}
	id, _ := data["id"].(string)
	if id == "" {
		return nil, apperr.Validation("id", "id parameter is required.")
	}

	p, err := e.store.FindProject(id)
	if err != nil {
		return nil, err
	}
	out, err := e.visible(c, ProjectSchema, p)
	if err != nil {
		return nil, err
	}
	if dept, err := e.store.FindDepartment(p.Field("department")); err == nil {
		out["department"] = dept.Field("department_id")
	}

	html, err := e.utilities.String("render_markdown", p.Field("project_description"))
	if err != nil {
		return nil, err
	}
	out[DescriptionHTML] = html
	return out, nil
}

func (e *Extension) visible(c *action.Context, schemaName string, r Record) (map[string]any, error) {
	def, err := e.schemas.Get(schemaName)
	if err != nil {
		return nil, err
	}
	all := r.AsMap()
	out := def.FilterShow(c.Role, all)
	for _, k := range []string{"id", "created_at", "updated_at"} {
		out[k] = all[k]
	}
	return out, nil
}

// contractPeriod rejects a contract ending before it starts. Both dates
// have already passed the date validator.
func contractPeriod(data map[string]any) error {
	start, err := time.Parse(validator.DateLayout, fmt.Sprint(data["contract_start_date"]))
	if err != nil {
		return apperr.Validation("contract_start_date", "Given date string does not match the format %Y-%m-%d. Should be ISO format")
	}
	end, err := time.Parse(validator.DateLayout, fmt.Sprint(data["contract_end_date"]))
	if err != nil {
		return apperr.Validation("contract_end_date", "Given date string does not match the format %Y-%m-%d. Should be ISO format")
	}
	if end.Before(start) {
		return apperr.Validation("contract_end_date", "Contract end date should not be before the start date")
	}
	return nil
}
