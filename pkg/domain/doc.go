/*
Package domain contains the core domain models for Dice Journey.

It defines the entities a journey is built from and the snapshots produced
when it is executed. This package is kept free of I/O and persistence; the
stores in pkg/journey and pkg/history hold these values and the runtime in
internal/runtime evaluates them.

# Key Entities

  - Journey: A named collection of Rolls forming a branching decision tree.
  - Roll: A node in the journey holding one or more Dice.
  - Die: N dice of M sides with a threshold or range classification.
  - Callback / Range: Outcome messages and the Roll ids they branch to.
  - Config: The portable, position-free exchange format.
  - RollResult / HistorySession: Immutable snapshots of executed rolls.
*/
package domain
