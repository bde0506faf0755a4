/*
Package escrow implements a two of three escrow.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

A sender creates a deal naming a receiver and an arbiter, then deposits the
exact deal amount into the deal account. Each of the three participants can
vote to release the funds to the receiver or to refund them to the sender.
The second matching vote settles the deal: the whole balance is transferred
once and the deal is closed for good.

Deals are never deleted. A settled deal remains readable, including its
votes and whether it was refunded.
*/
package escrow
