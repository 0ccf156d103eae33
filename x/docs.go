/*
Package x holds the authentication shared by all extensions.

Handlers never look at transaction signatures themselves. They ask an
Authenticator for the conditions fulfilled by the current transaction, and
derive the caller from the first one (see Caller). SignersDecorator puts the
signers of a transaction into the context for SignersAuth.

Sub-packages are the ledger extensions: roles, token, passport, badge,
auction and sale, plus the decorators in utils.
*/
package x
