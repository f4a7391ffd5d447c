/*
Package dicejourney runs branching dice-roll decision trees.

A journey is a set of rolls; each roll holds dice; each die either passes or
fails against a threshold, or lands in one of several ranges. Every outcome
can branch to any number of other rolls. The engine evaluates rolls, reports
where the journey can go next, and records what happened in a per-journey
history. It never walks the tree on its own: the caller (a CLI, an HTTP
client, a UI) decides which of the next rolls to execute.

# Usage

	store := memory.NewStore()
	eng := dicejourney.New(store, dicejourney.WithSeed(42))
	if err := eng.Init(ctx); err != nil {
		log.Fatal(err)
	}

	out, err := eng.Roll(ctx, "roll-1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Session.Rolls[0].Dice[0].Message, out.Next)

Persistence is pluggable through ports.KVStore: memory, files, Redis and
SQLite adapters live under pkg/adapters.
*/
package dicejourney
