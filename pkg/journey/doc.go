/*
Package journey is the builder-side store of journeys.

Storage keeps every journey with its builder positions, tracks the current
journey, and converts to and from the portable domain.Config. All mutations
are persisted immediately through a ports.KVStore.

Operations that reference a journey, roll or die that does not exist are
silent no-ops: they return a nil error and change nothing. Call sites in a
UI rely on that tolerance. Errors are only returned when persisting fails
or a patch cannot be decoded.
*/
package journey
