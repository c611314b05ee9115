// Package model contains the records mirrored from the database tables.
package model
