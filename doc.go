/*
Package maitred is a small dialog engine for restaurant reservations: a
multi-turn slot-filling waterfall (time, party size, name, confirmation)
with intent routing, per-conversation session management and pluggable
state stores.

# Concept

The engine treats a conversation as persisted state plus a fixed
waterfall of prompts. Each turn loads the state, either resumes the
suspended step or routes the utterance by intent, and saves the state
before returning. "Waiting for the user" is a status in the store, never
a blocked goroutine, so the bot can be embedded in any host: CLI, HTTP
server, or MCP agent infrastructure.

External concerns (intent recognition, knowledge-base answers, speech
markup) sit behind narrow interfaces in pkg/ports; offline reference
implementations ship in pkg/recognizer, pkg/kb and pkg/speech.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/dmoraisb/maitred"
		"github.com/dmoraisb/maitred/pkg/adapters/memory"
		"github.com/dmoraisb/maitred/pkg/domain"
		"github.com/dmoraisb/maitred/pkg/recognizer"
	)

	func main() {
		bot, err := maitred.New(memory.NewStore(),
			maitred.WithRecognizer(recognizer.New()),
		)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		replies, err := bot.Turn(ctx, domain.Message("table-42", "book a table for 2 tomorrow 7pm"))
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range replies {
			fmt.Println(r.Text)
		}
	}
*/
package maitred
