/*
Package app glues the extensions together into a single ledger.

A Router dispatches each message to the handler registered for its path.
Decorators wrap the router with the cross cutting concerns (signers,
recovery, logging, savepoints). The Ledger executes blocks over a
CommitStore: it keeps separate caches for checking and delivering, sets
the block height and time in the context and fans out every emitted event
to the configured EventSink.
*/
package app
