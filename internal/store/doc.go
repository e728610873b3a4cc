// Package store reads print data from the library's SQLite catalogue.
//
// Two tables feed the documents:
//   - ppl: incarcerated readers, one credential each
//   - libros: catalogued books, one label each
//
// A third table, credenciales, logs every credential issued so a reprint
// can be traced back to the page fingerprint that was printed.
//
// # Locations
//
// A book's printed location is its ubicacion column when set. Rows created
// before that column was populated fall back to the shelf code: shelf
// letter, level digit and a two-digit position, e.g. estante C, nivel 4,
// posicion 34 prints as C434.
//
// Withdrawn books (estado = 'dado_de_baja') keep their rows but are never
// listed for relabelling.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
