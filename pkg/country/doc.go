// Package country validates ISO 3166-1 alpha-2 country codes and resolves
// English country names using the CLDR data shipped with golang.org/x/text.
package country
