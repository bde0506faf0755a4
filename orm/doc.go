/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index, and may possess secondary indexes (1:1 or 1:N).
* Secondary indexes are compact: all references for an index value are
  stored under a single key.

Models are serialized with go-amino. ModelBucket is the preferred API for
extensions; it validates models before saving them and allocates keys from a
Sequence when no key is given.
*/
package orm
