package hrmgmt

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/utility"
)

func (e *Extension) userGivenEmail(args ...any) (any, error) {
	email, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	emp, err := e.store.Find(email)
	if err != nil || !strings.EqualFold(emp.WorkEmail(), strings.TrimSpace(email)) {
		return nil, apperr.UserNotFound("email", "user not found for a given user email.")
	}
	return emp.AsMap(), nil
}

// userFullName formats an employee or employee map as "Last, First".
func userFullName(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, apperr.Parameter("args", "missing argument 0")
	}
	var first, last string
	switch v := args[0].(type) {
	case Employee:
		first, last = v.Field("first_name"), v.Field("last_name")
	case map[string]any:
		first, _ = v["first_name"].(string)
		last, _ = v["last_name"].(string)
	default:
		return nil, apperr.Parameter("args", "argument 0 must be an employee")
	}
	return capitalize(last) + ", " + capitalize(first), nil
}

func (e *Extension) schemaGroups(args ...any) (any, error) {
	name, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	def, err := e.schemas.Get(name)
	if err != nil {
		return nil, err
	}
	return def.Groups(), nil
}

// verifyAccess reports whether principal passes the named access check,
// optionally against the employee stored under the third argument.
func (e *Extension) verifyAccess(args ...any) (any, error) {
	check, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	p, err := utility.Arg[action.Principal](args, 1)
	if err != nil {
		return nil, err
	}
	c := action.NewContext(context.Background(), check).WithPrincipal(p)

	var emp Employee
	if len(args) > 2 {
		if id, _ := args[2].(string); id != "" {
			if emp, err = e.store.Find(id); err != nil {
				return false, nil
			}
		}
	}

	switch check {
	case AccessAuthenticated, AccessShow:
		return canShow(c), nil
	case AccessCreate:
		return canCreate(c), nil
	case AccessUpdate:
		return canUpdate(c, emp), nil
	case AccessDelete:
		return canDelete(c), nil
	}
	return nil, apperr.NotSupported("action", "Unknown access check: "+check)
}

func (e *Extension) totalEmployeeCount(...any) (any, error) {
	return e.store.Count(), nil
}

// stringToHTMLID lower-cases s and joins its words with dashes.
func stringToHTMLID(args ...any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return "", nil
	}
	s, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return strings.Join(strings.Split(strings.ToLower(s), " "), "-"), nil
}

// listToCommaSeparatedText joins a list for display. Items are trimmed and
// title-cased unless the second argument is false.
func listToCommaSeparatedText(args ...any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return "", nil
	}
	items := fieldValues(args[0])
	if items == nil {
		return nil, apperr.Parameter("args", "argument 0 must be a list")
	}
	titled := true
	if len(args) > 1 {
		if b, ok := args[1].(bool); ok {
			titled = b
		}
	}

	out := make([]string, len(items))
	for i, item := range items {
		if titled {
			item = title(strings.TrimSpace(item))
		}
		out[i] = item
	}
	return strings.Join(out, ","), nil
}

// capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
