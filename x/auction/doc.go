/*
Package auction implements English auctions of passports.

The seller moves the passport into the custody of the house account when the
auction is created. Every bid is escrowed in the house account until it is
cancelled or the seller ends the auction, so the house balance always equals
the sum of open bids. Ending an auction pays the winning bid, minus the house
fee, to the seller and refunds every other bid in a single atomic step.
An auction without open bids can instead be cancelled by the seller, which
returns the passport.

The house account must be an approved marketplace of the passport
directory.
*/
package auction
