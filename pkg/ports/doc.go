/*
Package ports defines the driven ports (interfaces) for Dice Journey.

These interfaces decouple the stores and the runtime from external
implementations, so the same journey storage can sit on memory, files,
Redis or SQLite, and the evaluator can be driven by a seeded source in tests.

# Key Interfaces

  - KVStore: Durable get/set of JSON blobs by string key.
  - Source: Uniform integer draws used to roll dice.
*/
package ports
