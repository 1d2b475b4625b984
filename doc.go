/*
Package tutor is a deterministic conversational backend for a
Portuguese-to-English tutoring product. It drives two rule-based
orchestrators: a learning mode that keeps every exchange anchored to a
grammar lesson, and a roleplay simulator that stays in character through
a slot-filling scenario.

# Concept

A student message never reaches a language model before the orchestrator
has decided what kind of turn it is. Learning mode classifies the message
into a closed intent set, applies a policy table, and composes the reply
from the lesson spec; the simulator routes the message through a six-stage
state machine whose transitions are gated by collected slots. Both engines
mutate a per-session state record that the hosting layer persists through
a keyed store (in-memory or Redis).

# Key Properties

  - Deterministic: same state and input always produce the same reply.
  - Topic-anchored: off-topic messages in learning mode are always
    redirected back to the lesson, and every turn ends with a question.
  - In-character: simulator replies pass through a validator that rewrites
    teacher-mode phrasing before it reaches the student.
  - Loop-safe: repeated bot phrasing trips a recovery path that re-asks
    the current practice prompt with fresh wording.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aprenda/tutor"
	)

	func main() {
		eng, err := tutor.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		reply, _, err := eng.LearningTurn(ctx, "session-123", "verb_to_be", "oi")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(reply)
	}
*/
package tutor
