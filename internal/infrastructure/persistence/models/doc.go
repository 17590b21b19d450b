// Package models contains the GORM persistence models and their
// converters to and from the domain entities. Domain entities never
// carry GORM tags; this package is the only place that knows the
// table shapes.
package models
