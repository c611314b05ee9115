// Package sqlerr handles database driver errors.
//
// It turns raw PostgreSQL errors into structured values and maps them onto
// client-facing errs.HTTPError values (a foreign key violation becomes a
// 400, a missing row becomes a 404).
package sqlerr
