// Package database owns the SQLite connection and schema migration.
//
// Entity-specific queries live in the subpackages (categories, books,
// members, borrows), one repository per entity. The repositories receive the
// shared *gorm.DB and run every multi-statement mutation inside a
// transaction so that cascades and availability flips are atomic.
package database
