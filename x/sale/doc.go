/*
Package sale implements the fixed price passport desk.

An owner lists a passport with a price in the native currency, in the
alternate currency, or in both. A buyer picks one of the currencies and
approves the desk account to pull the price. A configured royalty share goes
to the passport creator and the rest to the seller.

Listings are not invalidated when a passport changes owner outside of the
desk. Every purchase compares the recorded seller with the current owner.
*/
package sale
