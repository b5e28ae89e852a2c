// Package utility implements the registry of helper functions that
// extensions share with each other, such as formatting helpers and config
// lookups.
//
// Utilities take variadic arguments; use [Arg] and [IntArg] to unpack them:
//
//	utils.Register("list_slice", func(args ...any) (any, error) {
//	    list, err := utility.Arg[[]any](args, 0)
//	    ...
//	})
//
//	v, err := utils.Call("list_slice", items, 0, 5)
package utility
