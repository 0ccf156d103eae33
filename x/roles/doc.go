/*
Package roles implements the role registry shared by all ledger extensions.

There is exactly one governance account at any time. Governance can hand the
role over to another account or renounce it. Once renounced, the governance
slot holds the null address and every governance gated operation of every
extension fails with ErrUnauthorized forever.

Governance also maintains the set of approved marketplaces. A marketplace is
an account (usually the address of an exchange extension, like the auction
house) that may move passports on behalf of their owners.
*/
package roles
