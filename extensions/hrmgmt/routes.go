package hrmgmt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/route"
)

// AppRoute registers the JSON profile pages.
func (e *Extension) AppRoute(r *route.Routes) error {
	routes := []struct {
		key string
		rt  route.Route
	}{
		{key: "profile", rt: route.Route{
			Pattern: "/profile/",
			Method:  http.MethodGet,
			Name:    "profile",
			Handler: internal.ActionHandler("profile", e.profilePage),
		}},
		{key: "other_profile", rt: route.Route{
			Pattern: "/profile/{profile_id}",
			Method:  http.MethodGet,
			Name:    "profile",
			Handler: internal.ActionHandler("profile", e.profilePage),
		}},
		{key: "profile_search", rt: route.Route{
			Pattern: "/profile_search/",
			Method:  http.MethodGet,
			Name:    "profile_search",
			Handler: internal.ActionHandler("profile_search", e.searchPage),
		}},
	}
	for _, rr := range routes {
		if err := r.Register(rr.key, rr.rt); err != nil {
			return err
		}
	}
	return nil
}

// profilePage shows the profile named in the URL, or the acting user's
// own profile.
func (e *Extension) profilePage(c *action.Context, r *http.Request) (any, error) {
	id := chi.URLParam(r, "profile_id")
	if id == "" {
		if !c.IsAuthenticated() {
			return nil, apperr.NotAuthorized("user", "Not authorized to see profile.")
		}
		id = c.User.ID
		if _, err := e.store.Find(id); err != nil && c.User.Email != "" {
			id = c.User.Email
		}
	}
	return e.showEmployee(c, map[string]any{"id": id})
}

func (e *Extension) searchPage(c *action.Context, r *http.Request) (any, error) {
	return e.searchEmployee(c, internal.ValuesToMap(r.URL.Query()))
}
