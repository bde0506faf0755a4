/*
Package utils provides decorators shared by all message handlers.

Recovery turns a panicking handler into an ErrPanic error, Logging reports
every processed message together with its duration and Savepoint isolates
the changes of a handler so that a failure leaves the store untouched.
*/
package utils
