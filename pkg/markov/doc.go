/*
Package markov builds order-2 (trigram) Markov chain models over word
streams and generates pseudo-random text that statistically resembles the
ingested corpus.

Words are fed incrementally, from slices or from line-oriented readers, and
trigrams spanning the boundary between separate feed calls are reconstructed,
so a corpus fed in pieces trains exactly the same model as the corpus fed
whole. The transition table behind a model is the Store interface; the
in-memory map store in this package can be swapped for one of the
database-backed stores under pkg/adapters without touching ingestion or
generation code.
*/
package markov
