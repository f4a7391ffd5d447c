/*
Package persistence holds typed JSON documents on top of a ports.KVStore.

A Document is loaded once at startup and flushed on every mutation. Each
mutation runs against a private copy; the copy replaces the in-memory value
only after the store accepted the write, so a failed write never leaves the
process with state that was not persisted.
*/
package persistence
