/*
Package token implements the fungible payment token used by the exchange
extensions.

Every account holds one wallet per currency ticker. An owner can approve a
spender to move up to a given amount on their behalf, which is how the
auction house escrows bids and the badge catalog collects payments.
*/
package token
