// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: a blank import runs the init functions
// of each concrete backend, which register their factories with the storage
// package. Importing it makes the "postgres" and "sqlite" kinds available at
// runtime.
//
// Binaries wanting only a subset of backends can blank-import the individual
// backend packages instead.
package all

import (
	_ "salesreport/internal/storage/postgres"
	_ "salesreport/internal/storage/sqlite"
)
