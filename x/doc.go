/*
Package x contains the extensions of the trust application.

Extensions implement common functionality (Handler, Decorator, Initializer)
and are combined together in the app package. Every extension receives an
Authenticator in its constructor, so that the authentication scheme can be
replaced without touching the extension code.
*/
package x
