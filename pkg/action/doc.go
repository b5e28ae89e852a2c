// Package action implements the API-action registry.
//
// Actions are registered under one of four methods (get, post, put, delete)
// and invoked by name with a request [Context] and a parameter map:
//
//	actions := action.NewRegistry(log)
//	err := actions.Register("ping", func(c *action.Context, data map[string]any) (any, error) {
//	    return "pong", nil
//	}, "GET")
//
//	result, err := actions.Get("ping", action.NewContext(ctx, "ping"), nil)
//
// An unsupported method fails with a MethodNotAllowed error before anything
// else is checked. Running an unknown action fails with NotFound.
package action
