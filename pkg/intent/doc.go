// Package intent maps a recognized intent (plus extracted entities) to
// the action the bot should take: a direct reply, starting the
// reservation waterfall seeded with whatever the utterance already
// answered, or falling back to the knowledge base.
package intent
