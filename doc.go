/*
Package bazaar defines all common interfaces used to tie together the
ledger extensions, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

The ledger is a single writer state machine: every message is processed to
completion against a KVStore before the next one starts. The store itself is
provided by the environment (see the store package for adapters); this
package only describes what the extensions need from it.

We pass context through context.Context between app, decorators, and
handlers. To do so, bazaar defines some common keys to store info, such as
block height, block time and chain id. Each extension, such as auth, may add
its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may error/panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package bazaar
