/*
Package badge implements the badge catalog, semi-fungible assets held in
quantities.

Two kinds of badges share one id space. Priced badges are created by
governance and sold for the payment token: the buyer pays price times
quantity to the revenue account, approved to the catalog account in
advance. Gated badges are distributed in batches that must be attested by
the registered signer, are limited to one unit per account and can never be
transferred.
*/
package badge
