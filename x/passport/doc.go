/*
Package passport implements the directory of passports, unique assets bound
to accounts.

Passports are minted in batches by governance and may be signed by
governance. A signed passport is terminal: it can never be burned and only
governance can move it. Whether unsigned passports can change hands is a
directory wide policy. Approved marketplaces are exempt from that policy, so
an owner can always sell an unsigned passport through a marketplace.

  Unminted -> Owned(unsigned) -> Owned(signed)
              Owned(unsigned) -> Burned
*/
package passport
