/*
Package cash keeps the balances of all accounts and moves value between
them. The escrow extension uses the Controller as its transfer capability.
*/
package cash
